package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/lumenarts/forge/pkg/model"
)

// FromOpenAPI derives a template from the JSON request body of the named
// operation in an OpenAPI document. Property names become field labels
// (humanised), schema types map onto the closed field-type enum, and enums
// become select options.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (model.Template, error) {
	if len(raw) == 0 {
		return model.Template{}, fmt.Errorf("importer: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.Template{}, fmt.Errorf("importer: load openapi document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return model.Template{}, fmt.Errorf("importer: operation %q not found", operationID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return model.Template{}, fmt.Errorf("importer: operation %q has no JSON request body", operationID)
	}

	tpl := model.Template{
		Title:       titleFor(operation, operationID),
		Description: operation.Description,
		Tags:        append([]string(nil), operation.Tags...),
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := fieldFrom(name, ref.Value)
		if !ok {
			continue
		}
		tpl.Fields = append(tpl.Fields, field)
	}

	if result := model.Validate(tpl); !result.Valid {
		return model.Template{}, fmt.Errorf("importer: operation %q: %w", operationID, result.Err())
	}
	return tpl, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value
	if !schema.Type.Is(openapi3.TypeObject) {
		return nil
	}
	return schema
}

func titleFor(op *openapi3.Operation, operationID string) string {
	if strings.TrimSpace(op.Summary) != "" {
		return strings.TrimSpace(op.Summary)
	}
	return Humanize(operationID)
}

// fieldFrom maps one schema property onto the field enum. Nested objects and
// arrays have no counterpart in the flat template model and are skipped.
func fieldFrom(name string, schema *openapi3.Schema) (model.Field, bool) {
	field := model.Field{
		ID:    uuid.NewString(),
		Label: labelFor(name, schema),
	}

	switch {
	case schema.Type.Is(openapi3.TypeBoolean):
		field.Type = model.FieldTypeCheckbox

	case schema.Type.Is(openapi3.TypeInteger), schema.Type.Is(openapi3.TypeNumber):
		field.Type = model.FieldTypeNumber

	case schema.Type.Is(openapi3.TypeString):
		if len(schema.Enum) > 0 {
			field.Type = model.FieldTypeSelect
			for _, value := range schema.Enum {
				if text, ok := value.(string); ok {
					field.Options = append(field.Options, text)
				}
			}
			if len(field.Options) == 0 {
				return model.Field{}, false
			}
			break
		}
		switch schema.Format {
		case "email":
			field.Type = model.FieldTypeEmail
		case "date", "date-time":
			field.Type = model.FieldTypeDate
		case "binary", "byte":
			field.Type = model.FieldTypeFile
		case "html", "richtext":
			field.Type = model.FieldTypeRichText
		case "textarea":
			field.Type = model.FieldTypeTextarea
		default:
			if schema.MaxLength != nil && *schema.MaxLength > 255 {
				field.Type = model.FieldTypeTextarea
			} else {
				field.Type = model.FieldTypeText
			}
		}

	default:
		return model.Field{}, false
	}

	return field, true
}

func labelFor(name string, schema *openapi3.Schema) string {
	if strings.TrimSpace(schema.Title) != "" {
		return strings.TrimSpace(schema.Title)
	}
	return Humanize(name)
}

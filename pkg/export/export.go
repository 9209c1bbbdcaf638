// Package export serialises a filled entry plus its template into a portable
// tabular document: one Field/Value row per template field, in template field
// order, with a fixed placeholder for values the entry never received.
package export

import (
	"context"

	"github.com/lumenarts/forge/pkg/form"
	"github.com/lumenarts/forge/pkg/model"
)

// Placeholder is rendered for fields the entry holds no value for. Exported
// documents always contain one row per defined field regardless of
// completion state.
const Placeholder = "N/A"

// Exporter converts a (Template, Entry) pair into a byte representation.
type Exporter interface {
	Name() string
	ContentType() string
	Export(ctx context.Context, t model.Template, e model.Entry) ([]byte, error)
}

// Row is one rendered table row.
type Row struct {
	Field string
	Value string
	// RichText marks values that carry sanitised HTML fragments; only the
	// HTML exporter renders them unescaped.
	RichText bool
}

// Rows renders the table body. Ordering is exactly the template's field
// order, never the entry's map iteration order; missing and empty values
// become the placeholder. A template with an unknown field type fails
// wholesale.
func Rows(t model.Template, e model.Entry) ([]Row, error) {
	rows := make([]Row, 0, len(t.Fields))
	for _, field := range t.Fields {
		if _, err := model.Describe(field.Type); err != nil {
			return nil, err
		}

		display := ""
		if value, ok := form.Lookup(e, field); ok {
			display = form.FormatValue(field, value)
		}
		if display == "" {
			display = Placeholder
		}

		rows = append(rows, Row{
			Field:    field.Label,
			Value:    display,
			RichText: field.Type == model.FieldTypeRichText && display != Placeholder,
		})
	}
	return rows, nil
}

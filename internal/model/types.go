package model

import "time"

// FieldType enumerates the input kinds a template field may declare. The set
// is closed: validation and rendering switch exhaustively over it, so new
// kinds require a registry entry rather than runtime registration.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeRichText FieldType = "richtext"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
	FieldTypeFile     FieldType = "file"
)

// Field models one named, typed slot within a Template. IDs are assigned at
// creation and never change afterwards; labels are user-editable, which is why
// nothing downstream may derive identity from them. Struct fields carry the
// persistence tags the store and importers serialise directly.
type Field struct {
	ID      string    `json:"id" bson:"id" yaml:"id"`
	Label   string    `json:"label" bson:"label" yaml:"label"`
	Type    FieldType `json:"type" bson:"type" yaml:"type"`
	Options []string  `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"`
}

// Clone returns a deep copy so editor mutations never alias a stored field.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// Template is a user-defined, reusable record schema: an ordered list of
// typed fields plus display metadata. Icon is an opaque key into an external
// icon set and never influences validation or export. A Template without a
// store-assigned ID is a draft.
type Template struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" yaml:"id,omitempty"`
	Title       string    `json:"title" bson:"title" yaml:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty" yaml:"icon,omitempty"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty" yaml:"tags,omitempty"`
	Fields      []Field   `json:"fields" bson:"fields" yaml:"fields"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" yaml:"-"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	if t.Fields != nil {
		out.Fields = make([]Field, len(t.Fields))
		for i, field := range t.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// FieldByID looks a field up by its stable identifier.
func (t Template) FieldByID(id string) (Field, bool) {
	for _, field := range t.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// FieldByLabel resolves a field by its display label. This exists only as a
// compatibility shim for entries recorded before values were keyed by field
// id; it breaks silently once a label is renamed, so new code must use
// FieldByID.
func (t Template) FieldByLabel(label string) (Field, bool) {
	for _, field := range t.Fields {
		if field.Label == label {
			return field, true
		}
	}
	return Field{}, false
}

// Entry is one filled instance of a Template. Values are keyed by field id;
// the entry holds a weak back-reference to its template and never owns it.
type Entry struct {
	TemplateID string         `json:"templateId" bson:"templateId"`
	Values     map[string]any `json:"values" bson:"values"`
}

// Clone returns a copy with its own value map.
func (e Entry) Clone() Entry {
	out := e
	out.Values = make(map[string]any, len(e.Values))
	for key, value := range e.Values {
		out.Values[key] = value
	}
	return out
}

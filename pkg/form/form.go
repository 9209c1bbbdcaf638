// Package form turns a validated template into an editable entry and checks
// user input against each field's type. Everything here is a pure
// transformation over in-memory state; no storage or network side effects.
package form

import (
	"fmt"

	"github.com/lumenarts/forge/pkg/model"
)

// FieldValidationError reports a single field value failing its type check.
// It is scoped to that field and never blocks editing others.
type FieldValidationError struct {
	FieldID string
	Label   string
	Reason  string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("form: field %q: %s", e.FieldID, e.Reason)
}

// Instantiate produces an entry seeded with each field's default value per
// the type registry. Templates carrying an unknown field type are rejected
// wholesale so the caller can render them inert.
func Instantiate(t model.Template) (model.Entry, error) {
	entry := model.Entry{
		TemplateID: t.ID,
		Values:     make(map[string]any, len(t.Fields)),
	}
	for _, field := range t.Fields {
		info, err := model.Describe(field.Type)
		if err != nil {
			return model.Entry{}, err
		}
		entry.Values[field.ID] = info.Default
	}
	return entry, nil
}

// SetValue validates raw against the field's type and returns a copy of the
// entry with the committed value. The input entry is never mutated.
func SetValue(t model.Template, e model.Entry, fieldID string, raw any) (model.Entry, error) {
	field, ok := t.FieldByID(fieldID)
	if !ok {
		return model.Entry{}, &FieldValidationError{FieldID: fieldID, Reason: "no such field"}
	}

	value, err := ParseValue(field, raw)
	if err != nil {
		return model.Entry{}, err
	}

	out := e.Clone()
	if out.Values == nil {
		out.Values = make(map[string]any, 1)
	}
	out.Values[fieldID] = value
	return out, nil
}

// Lookup resolves the committed value for a field. Values are keyed by field
// id; entries recorded by older builds keyed them by label, so the label is
// tried second as a compatibility shim. The fallback is intentionally visible
// here rather than silently folded away: renaming a label strands
// label-keyed values, and callers deciding to migrate need the distinction.
func Lookup(e model.Entry, field model.Field) (any, bool) {
	if value, ok := e.Values[field.ID]; ok {
		return value, true
	}
	value, ok := e.Values[field.Label]
	return value, ok
}

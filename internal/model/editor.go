package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Editor mutates a template draft in memory before it is re-submitted to
// validation and the store. It owns its copy exclusively; callers hand a
// template in and take a snapshot out, never sharing the draft between
// sessions.
type Editor struct {
	draft Template
}

// NewEditor starts an editing session over a copy of t.
func NewEditor(t Template) *Editor {
	return &Editor{draft: t.Clone()}
}

// NewDraft starts a session on an empty, unsaved template.
func NewDraft(title string) *Editor {
	return &Editor{draft: Template{Title: title}}
}

// Template returns a snapshot of the current draft.
func (e *Editor) Template() Template {
	return e.draft.Clone()
}

// SetTitle, SetDescription, SetIcon and SetTags update display metadata.
func (e *Editor) SetTitle(title string)      { e.draft.Title = title }
func (e *Editor) SetDescription(desc string) { e.draft.Description = desc }
func (e *Editor) SetIcon(icon string)        { e.draft.Icon = icon }
func (e *Editor) SetTags(tags []string)      { e.draft.Tags = append([]string(nil), tags...) }

// AddField appends a fresh text field with a generated unique id and an empty
// label, returning the new field.
func (e *Editor) AddField() Field {
	field := Field{
		ID:   uuid.NewString(),
		Type: FieldTypeText,
	}
	e.draft.Fields = append(e.draft.Fields, field)
	return field
}

// RemoveField deletes the field with the given id, reporting whether it
// existed.
func (e *Editor) RemoveField(id string) bool {
	for i, field := range e.draft.Fields {
		if field.ID == id {
			e.draft.Fields = append(e.draft.Fields[:i], e.draft.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// FieldPatch is a partial field update; nil members are left untouched.
type FieldPatch struct {
	Label   *string
	Type    *FieldType
	Options []string
}

// UpdateField merges patch into the identified field. Changing the type away
// from select clears any existing options so stale option lists never survive
// a retype. The field id itself is immutable.
func (e *Editor) UpdateField(id string, patch FieldPatch) (Field, error) {
	for i := range e.draft.Fields {
		field := &e.draft.Fields[i]
		if field.ID != id {
			continue
		}
		if patch.Label != nil {
			field.Label = *patch.Label
		}
		if patch.Type != nil {
			field.Type = *patch.Type
			if *patch.Type != FieldTypeSelect {
				field.Options = nil
			}
		}
		if patch.Options != nil {
			field.Options = append([]string(nil), patch.Options...)
		}
		return field.Clone(), nil
	}
	return Field{}, fmt.Errorf("model: no field with id %q", id)
}

// MoveField repositions the identified field at index to, shifting the rest.
// Field ids are preserved.
func (e *Editor) MoveField(id string, to int) error {
	if to < 0 || to >= len(e.draft.Fields) {
		return fmt.Errorf("model: move target %d out of range", to)
	}
	from := -1
	for i, field := range e.draft.Fields {
		if field.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("model: no field with id %q", id)
	}
	field := e.draft.Fields[from]
	rest := append(e.draft.Fields[:from], e.draft.Fields[from+1:]...)
	e.draft.Fields = append(rest[:to], append([]Field{field}, rest[to:]...)...)
	return nil
}

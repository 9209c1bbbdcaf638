// Package forge assembles the template engine's public surface: template
// definitions, entry validation, form rendering and exports, re-exported
// from the underlying packages for callers that want one import.
package forge

import (
	"context"

	"github.com/lumenarts/forge/pkg/export"
	"github.com/lumenarts/forge/pkg/form"
	"github.com/lumenarts/forge/pkg/model"
	"github.com/lumenarts/forge/pkg/renderers/htmlform"
	"github.com/lumenarts/forge/pkg/store"
)

// Template describes a reusable form definition.
type Template = model.Template

// Field is one question inside a template.
type Field = model.Field

// Entry holds submitted values for a template, keyed by field id.
type Entry = model.Entry

// FieldType names the closed set of supported field kinds.
type FieldType = model.FieldType

// Snapshot is a full replacement of the stored template list.
type Snapshot = store.Snapshot

// Validate checks a template against the persistence rules, reporting
// every violation.
func Validate(t Template) model.Result {
	return model.Validate(t)
}

// NewEditor opens an editing session over a copy of t.
func NewEditor(t Template) *model.Editor {
	return model.NewEditor(t)
}

// NewEntry instantiates an empty entry with per-type defaults.
func NewEntry(t Template) (Entry, error) {
	return form.Instantiate(t)
}

// SetValue validates raw against the field's type and returns the updated
// entry, leaving the input untouched.
func SetValue(t Template, e Entry, fieldID string, raw any) (Entry, error) {
	return form.SetValue(t, e, fieldID, raw)
}

// ExportText renders the entry as the plain-text Field/Value document.
func ExportText(ctx context.Context, t Template, e Entry) ([]byte, error) {
	return export.NewText().Export(ctx, t, e)
}

// RenderForm produces the HTML form for a template with default options.
func RenderForm(ctx context.Context, t Template) ([]byte, error) {
	renderer, err := htmlform.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, t, htmlform.RenderOptions{})
}

// NewMemoryStore returns the in-process store used by tests and the
// default server configuration.
func NewMemoryStore() *store.Memory {
	return store.NewMemory()
}

// Package template provides the template-engine seam the HTML exporter and
// form renderer rely on, backed by a pongo2 template set.
package template

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract so callers can swap the backing implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

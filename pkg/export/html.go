package export

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lumenarts/forge/pkg/model"
	rendertemplate "github.com/lumenarts/forge/pkg/render/template"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// TemplatesFS exposes the embedded export templates so callers can ship an
// alternate bundle based on the defaults.
func TemplatesFS() fs.FS {
	return templateFiles
}

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// richTextSanitizer bounds what richtext values may inject into exported
// HTML. User-generated-content policy plus basic block elements.
func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		richTextPolicy = bluemonday.UGCPolicy()
	})
	return richTextPolicy
}

// HTMLExporter renders the document as a standalone HTML page through the
// pongo2 engine. Richtext values are sanitised before they reach the
// template; everything else is escaped by the engine.
type HTMLExporter struct {
	templates rendertemplate.TemplateRenderer
}

// HTMLOption configures the HTML exporter.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) HTMLOption {
	return func(cfg *htmlConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// NewHTML constructs the HTML exporter with the embedded default templates.
func NewHTML(options ...HTMLOption) (*HTMLExporter, error) {
	cfg := htmlConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := rendertemplate.New(
			rendertemplate.WithFS(cfg.templateFS),
			rendertemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("export: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &HTMLExporter{templates: renderer}, nil
}

func (x *HTMLExporter) Name() string {
	return "html"
}

func (x *HTMLExporter) ContentType() string {
	return "text/html; charset=utf-8"
}

func (x *HTMLExporter) Export(ctx context.Context, t model.Template, e model.Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := Rows(t, e)
	if err != nil {
		return nil, err
	}

	viewRows := make([]map[string]any, 0, len(rows))
	policy := richTextSanitizer()
	for _, row := range rows {
		value := row.Value
		if row.RichText {
			value = policy.Sanitize(value)
		}
		viewRows = append(viewRows, map[string]any{
			"field":    row.Field,
			"value":    value,
			"richtext": row.RichText,
		})
	}

	result, err := x.templates.RenderTemplate("templates/export.tmpl", map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"rows":        viewRows,
	})
	if err != nil {
		return nil, fmt.Errorf("export: render template: %w", err)
	}
	return []byte(result), nil
}

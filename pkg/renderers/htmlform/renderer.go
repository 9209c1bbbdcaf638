// Package htmlform renders a template as an HTML input form. The markup is
// deliberately framework-free; chrome classes and theme tokens give host
// applications their styling hooks.
package htmlform

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/lumenarts/forge/pkg/form"
	"github.com/lumenarts/forge/pkg/model"
	rendertemplate "github.com/lumenarts/forge/pkg/render/template"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// TemplatesFS exposes the embedded form templates.
func TemplatesFS() fs.FS {
	return templateFiles
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves theme tokens through a go-theme selector; the
// resolved tokens surface as CSS custom properties on the form root.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// RenderOptions carries per-request state: committed entry values to prefill
// and field errors to surface inline.
type RenderOptions struct {
	Entry  *model.Entry
	Errors map[string]string
}

// Renderer converts a template into HTML form markup.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// New constructs the renderer with the embedded default templates.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
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
			return nil, fmt.Errorf("htmlform: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		selector:     cfg.selector,
		themeName:    cfg.themeName,
		themeVariant: cfg.themeVariant,
	}, nil
}

func (r *Renderer) Name() string {
	return "htmlform"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup for t. Field order follows the template;
// an unknown field type fails the whole render so corrupted templates show
// up as inert rather than partially drawn.
func (r *Renderer) Render(ctx context.Context, t model.Template, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]map[string]any, 0, len(t.Fields))
	for _, field := range t.Fields {
		view, err := r.fieldView(field, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, view)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"icon":        iconView(t.Icon),
		"tags":        t.Tags,
		"fields":      fields,
		"theme_css":   r.themeCSS(),
	})
	if err != nil {
		return nil, fmt.Errorf("htmlform: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) fieldView(field model.Field, opts RenderOptions) (map[string]any, error) {
	info, err := model.Describe(field.Type)
	if err != nil {
		return nil, err
	}

	var value any = info.Default
	if opts.Entry != nil {
		if committed, ok := form.Lookup(*opts.Entry, field); ok {
			value = committed
		}
	}

	checked := false
	if field.Type == model.FieldTypeCheckbox {
		checked, _ = value.(bool)
	}

	options := make([]map[string]any, 0, len(field.Options))
	for _, option := range field.Options {
		options = append(options, map[string]any{
			"value":    option,
			"selected": value == option,
		})
	}

	return map[string]any{
		"id":        field.ID,
		"label":     field.Label,
		"kind":      string(field.Type),
		"input":     inputType(field.Type),
		"multiline": info.Multiline,
		"value":     form.FormatValue(field, value),
		"checked":   checked,
		"options":   options,
		"error":     opts.Errors[field.ID],
	}, nil
}

func inputType(ft model.FieldType) string {
	switch ft {
	case model.FieldTypeEmail:
		return "email"
	case model.FieldTypeNumber:
		return "number"
	case model.FieldTypeDate:
		return "date"
	case model.FieldTypeCheckbox:
		return "checkbox"
	case model.FieldTypeFile:
		return "file"
	default:
		return "text"
	}
}

// themeCSS folds resolved theme tokens into CSS custom properties. Token
// order is sorted so output stays deterministic.
func (r *Renderer) themeCSS() string {
	if r.selector == nil {
		return ""
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil || selection == nil || selection.Manifest == nil {
		return ""
	}
	tokens := selection.Manifest.Tokens
	if len(tokens) == 0 {
		return ""
	}

	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(":root {")
	for _, name := range names {
		fmt.Fprintf(&sb, " --forge-%s: %s;", name, tokens[name])
	}
	sb.WriteString(" }")
	return sb.String()
}

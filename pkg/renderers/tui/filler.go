package tui

import (
	"context"
	"fmt"

	"github.com/lumenarts/forge/pkg/form"
	"github.com/lumenarts/forge/pkg/model"
)

const skipChoice = "(leave blank)"

// Filler walks a template's fields in order and collects an entry from
// interactive prompts. Input validation reuses the same per-type parsing
// the HTTP surface applies, so a value accepted at the prompt is a value
// the exporters and stores accept too.
type Filler struct {
	driver PromptDriver
}

// Option customises a Filler.
type Option func(*Filler)

// WithDriver replaces the survey-backed prompt driver, mainly for tests.
func WithDriver(d PromptDriver) Option {
	return func(f *Filler) {
		f.driver = d
	}
}

func New(options ...Option) *Filler {
	f := &Filler{
		driver: newSurveyDriver(),
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Fill prompts for every field of t and returns the completed entry.
// Empty answers leave the field at its default, matching optional fields
// elsewhere in the system. A terminal interrupt returns ErrAborted with
// no partial entry.
func (f *Filler) Fill(ctx context.Context, t model.Template) (model.Entry, error) {
	entry, err := form.Instantiate(t)
	if err != nil {
		return model.Entry{}, err
	}
	for _, field := range t.Fields {
		info, err := model.Describe(field.Type)
		if err != nil {
			return model.Entry{}, err
		}
		raw, err := f.prompt(ctx, field, info)
		if err != nil {
			return model.Entry{}, err
		}
		entry, err = form.SetValue(t, entry, field.ID, raw)
		if err != nil {
			return model.Entry{}, err
		}
	}
	return entry, nil
}

func (f *Filler) prompt(ctx context.Context, field model.Field, info model.TypeInfo) (any, error) {
	switch {
	case field.Type == model.FieldTypeCheckbox:
		def, _ := info.Default.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: def,
		})
	case field.Type == model.FieldTypeSelect:
		choices := append([]string{skipChoice}, field.Options...)
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message: field.Label,
			Options: choices,
		})
		if err != nil {
			return nil, err
		}
		if idx <= 0 {
			return "", nil
		}
		if idx >= len(choices) {
			return nil, fmt.Errorf("tui: choice %d out of range for %q", idx, field.Label)
		}
		return choices[idx], nil
	case info.Multiline:
		return f.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
		})
	default:
		return f.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Help:      inputHelp(field.Type),
			Validator: fieldValidator(field),
		})
	}
}

// fieldValidator adapts the shared per-type parser into a prompt validator
// so bad input is rejected in place instead of failing the whole session.
func fieldValidator(field model.Field) func(string) error {
	return func(text string) error {
		_, err := form.ParseValue(field, text)
		return err
	}
}

func inputHelp(ft model.FieldType) string {
	switch ft {
	case model.FieldTypeEmail:
		return "an address like name@example.org"
	case model.FieldTypeNumber:
		return "a decimal number"
	case model.FieldTypeDate:
		return "a date like " + form.DateLayout
	default:
		return ""
	}
}

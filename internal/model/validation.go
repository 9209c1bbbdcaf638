package model

import (
	"fmt"
	"strings"
)

// Validate gates persistence: a template that fails here must never reach the
// store. Checks run in a fixed order and every violated rule is reported.
func Validate(t Template) Result {
	var issues []Issue

	if strings.TrimSpace(t.Title) == "" {
		issues = append(issues, Issue{Message: "title must not be empty"})
	}
	if len(t.Fields) == 0 {
		issues = append(issues, Issue{Message: "template has no fields"})
	}

	for _, field := range t.Fields {
		if strings.TrimSpace(field.Label) == "" {
			issues = append(issues, Issue{FieldID: field.ID, Message: "label must not be empty"})
		}
	}

	seen := make(map[string]struct{}, len(t.Fields))
	for _, field := range t.Fields {
		if _, dup := seen[field.ID]; dup {
			issues = append(issues, Issue{FieldID: field.ID, Message: "field id is not unique"})
			continue
		}
		seen[field.ID] = struct{}{}
	}

	for _, field := range t.Fields {
		info, err := Describe(field.Type)
		if err != nil {
			issues = append(issues, Issue{FieldID: field.ID, Message: fmt.Sprintf("unknown field type %q", string(field.Type))})
			continue
		}
		if info.RequiresOptions && len(field.Options) == 0 {
			issues = append(issues, Issue{FieldID: field.ID, Message: "select field requires at least one option"})
		}
		if !info.RequiresOptions && len(field.Options) > 0 {
			issues = append(issues, Issue{FieldID: field.ID, Message: "options are only valid on select fields"})
		}
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}

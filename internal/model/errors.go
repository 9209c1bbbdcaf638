package model

import (
	"fmt"

	"go.uber.org/multierr"
)

// UnknownFieldTypeError marks a field type outside the closed enum, typically
// a template written by a newer schema version. It is fatal for that template
// only.
type UnknownFieldTypeError struct {
	Type FieldType
}

func (e *UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("model: unknown field type %q", string(e.Type))
}

// Issue is a single violated validation rule, optionally scoped to a field.
type Issue struct {
	FieldID string `json:"fieldId,omitempty"`
	Message string `json:"message"`
}

// Result carries the outcome of template validation. Issues lists every
// violated rule in check order, not just the first, so editors can surface
// them all at once.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err folds the issues into a single error value, or nil when valid. The
// individual issue errors remain reachable through multierr.Errors.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	var err error
	for _, issue := range r.Issues {
		if issue.FieldID != "" {
			err = multierr.Append(err, fmt.Errorf("field %s: %s", issue.FieldID, issue.Message))
			continue
		}
		err = multierr.Append(err, fmt.Errorf("%s", issue.Message))
	}
	return fmt.Errorf("model: invalid template: %w", err)
}

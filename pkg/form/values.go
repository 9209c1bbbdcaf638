package form

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/lumenarts/forge/pkg/model"
)

// DateLayout is the locale-independent calendar format entries commit and
// exports render.
const DateLayout = "2006-01-02"

// ParseValue validates raw input against the field's type and returns the
// canonical committed value: strings for text-like and date fields, float64
// for numbers, bool for checkboxes. Empty input is accepted for every type
// since fields carry no required flag.
func ParseValue(field model.Field, raw any) (any, error) {
	info, err := model.Describe(field.Type)
	if err != nil {
		return nil, &FieldValidationError{FieldID: field.ID, Label: field.Label, Reason: err.Error()}
	}

	if info.Primitive == model.PrimitiveBool {
		value, err := coerceBool(raw)
		if err != nil {
			return nil, fail(field, err.Error())
		}
		return value, nil
	}

	text, ok := rawString(raw)
	if !ok {
		return nil, fail(field, fmt.Sprintf("expected a string value, got %T", raw))
	}

	switch field.Type {
	case model.FieldTypeEmail:
		if text == "" {
			return "", nil
		}
		addr, err := mail.ParseAddress(text)
		if err != nil || addr.Address != text {
			return nil, fail(field, fmt.Sprintf("%q is not a valid email address", text))
		}
		return text, nil

	case model.FieldTypeNumber:
		if text == "" {
			return "", nil
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fail(field, fmt.Sprintf("%q is not a finite number", text))
		}
		return value, nil

	case model.FieldTypeDate:
		if text == "" {
			return "", nil
		}
		parsed, err := parseDate(text)
		if err != nil {
			return nil, fail(field, fmt.Sprintf("%q is not a calendar date", text))
		}
		return parsed, nil

	case model.FieldTypeSelect:
		if text == "" {
			return "", nil
		}
		for _, option := range field.Options {
			if option == text {
				return text, nil
			}
		}
		return nil, fail(field, fmt.Sprintf("%q is not one of the field's options", text))

	default:
		// text, textarea, richtext and file references pass through; this
		// core imposes no length bound and treats files as opaque keys.
		return text, nil
	}
}

func fail(field model.Field, reason string) *FieldValidationError {
	return &FieldValidationError{FieldID: field.ID, Label: field.Label, Reason: reason}
}

func rawString(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

func coerceBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "0", "no", "off":
			return false, nil
		case "true", "1", "yes", "on":
			return true, nil
		}
		return false, fmt.Errorf("%q is not a boolean", v)
	default:
		return false, fmt.Errorf("expected a boolean, got %T", raw)
	}
}

func parseDate(text string) (string, error) {
	parsed, err := timeParse(text)
	if err != nil {
		return "", err
	}
	return parsed.Format(DateLayout), nil
}

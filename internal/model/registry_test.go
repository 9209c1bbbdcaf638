package model

import (
	"errors"
	"testing"
)

func TestDescribe_CoversEveryFieldType(t *testing.T) {
	for _, ft := range FieldTypes() {
		info, err := Describe(ft)
		if err != nil {
			t.Fatalf("describe %s: %v", ft, err)
		}
		if info.Primitive == "" {
			t.Fatalf("field type %s has no primitive", ft)
		}
		if info.RequiresOptions && ft != FieldTypeSelect {
			t.Fatalf("only select may require options, %s does", ft)
		}
	}
}

func TestDescribe_Defaults(t *testing.T) {
	cases := []struct {
		ft   FieldType
		want any
	}{
		{FieldTypeText, ""},
		{FieldTypeTextarea, ""},
		{FieldTypeCheckbox, false},
		{FieldTypeFile, ""},
	}
	for _, tc := range cases {
		info, err := Describe(tc.ft)
		if err != nil {
			t.Fatalf("describe %s: %v", tc.ft, err)
		}
		if info.Default != tc.want {
			t.Fatalf("%s default = %v, want %v", tc.ft, info.Default, tc.want)
		}
	}
}

func TestDescribe_UnknownType(t *testing.T) {
	_, err := Describe(FieldType("hologram"))
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	var unknown *UnknownFieldTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldTypeError, got %T", err)
	}
	if unknown.Type != "hologram" {
		t.Fatalf("unexpected type in error: %q", unknown.Type)
	}
	if KnownFieldType("hologram") {
		t.Fatal("hologram must not be a known type")
	}
}

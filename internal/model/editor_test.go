package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEditor_AddField(t *testing.T) {
	ed := NewDraft("Exhibition Proposal")
	first := ed.AddField()
	second := ed.AddField()

	if first.ID == "" || second.ID == "" {
		t.Fatal("added fields must carry generated ids")
	}
	if first.ID == second.ID {
		t.Fatal("generated ids must be unique")
	}
	if first.Type != FieldTypeText || first.Label != "" {
		t.Fatalf("new field should be an unlabelled text field, got %+v", first)
	}
	if got := len(ed.Template().Fields); got != 2 {
		t.Fatalf("expected 2 fields, got %d", got)
	}
}

func TestEditor_RemoveField(t *testing.T) {
	ed := NewDraft("Survey")
	field := ed.AddField()

	if !ed.RemoveField(field.ID) {
		t.Fatal("expected removal to succeed")
	}
	if ed.RemoveField(field.ID) {
		t.Fatal("second removal must report missing field")
	}
	if got := len(ed.Template().Fields); got != 0 {
		t.Fatalf("expected no fields, got %d", got)
	}
}

func TestEditor_RetypeClearsOptions(t *testing.T) {
	ed := NewDraft("Survey")
	field := ed.AddField()

	selectType := FieldTypeSelect
	if _, err := ed.UpdateField(field.ID, FieldPatch{Type: &selectType, Options: []string{"A", "B"}}); err != nil {
		t.Fatalf("update to select: %v", err)
	}

	textType := FieldTypeText
	updated, err := ed.UpdateField(field.ID, FieldPatch{Type: &textType})
	if err != nil {
		t.Fatalf("retype to text: %v", err)
	}
	if len(updated.Options) != 0 {
		t.Fatalf("options must be cleared on retype, got %v", updated.Options)
	}
}

func TestEditor_UpdateFieldKeepsID(t *testing.T) {
	ed := NewDraft("Survey")
	field := ed.AddField()

	label := "Full Name"
	updated, err := ed.UpdateField(field.ID, FieldPatch{Label: &label})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != field.ID {
		t.Fatal("field id must be immutable")
	}
	if updated.Label != label {
		t.Fatalf("label = %q, want %q", updated.Label, label)
	}

	if _, err := ed.UpdateField("missing", FieldPatch{Label: &label}); err == nil {
		t.Fatal("expected error for unknown field id")
	}
}

func TestEditor_MoveFieldPreservesIDs(t *testing.T) {
	ed := NewDraft("Survey")
	a := ed.AddField()
	b := ed.AddField()
	c := ed.AddField()

	if err := ed.MoveField(c.ID, 0); err != nil {
		t.Fatalf("move: %v", err)
	}

	var got []string
	for _, field := range ed.Template().Fields {
		got = append(got, field.ID)
	}
	want := []string{c.ID, a.ID, b.ID}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if err := ed.MoveField(a.ID, 5); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestEditor_SnapshotDoesNotAliasDraft(t *testing.T) {
	ed := NewDraft("Survey")
	selectType := FieldTypeSelect
	field := ed.AddField()
	if _, err := ed.UpdateField(field.ID, FieldPatch{Type: &selectType, Options: []string{"A"}}); err != nil {
		t.Fatalf("update: %v", err)
	}

	snap := ed.Template()
	snap.Fields[0].Options[0] = "mutated"

	if ed.Template().Fields[0].Options[0] != "A" {
		t.Fatal("mutating a snapshot must not leak into the draft")
	}
}

package store

import (
	"testing"

	"github.com/lumenarts/forge/pkg/model"
)

func TestView_AppliesNewerSnapshotsOnly(t *testing.T) {
	v := NewView()

	if !v.Apply(Snapshot{Revision: 3, Templates: []model.Template{{ID: "a", Title: "A"}}}) {
		t.Fatal("first snapshot must be accepted")
	}
	if v.Apply(Snapshot{Revision: 2, Templates: []model.Template{{ID: "stale"}}}) {
		t.Fatal("older snapshot must be discarded")
	}
	if v.Apply(Snapshot{Revision: 3}) {
		t.Fatal("same revision must be discarded")
	}

	if got := v.Templates(); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("view state corrupted by stale snapshot: %+v", got)
	}

	if !v.Apply(Snapshot{Revision: 4}) {
		t.Fatal("newer snapshot must replace wholesale")
	}
	if got := v.Templates(); len(got) != 0 {
		t.Fatalf("replacement must be wholesale, got %+v", got)
	}
}

func TestView_ZeroRevisionInitialSnapshot(t *testing.T) {
	v := NewView()
	if !v.Apply(Snapshot{Revision: 0}) {
		t.Fatal("an unseeded view must accept the initial snapshot even at revision zero")
	}
	if v.Apply(Snapshot{Revision: 0}) {
		t.Fatal("a repeated revision must then be discarded")
	}
}

func TestView_LastRequestWins(t *testing.T) {
	v := NewView()
	v.SetActive("tpl-2")

	// A late result for tpl-1 arrives after the user switched to tpl-2.
	if v.Accept("tpl-1") {
		t.Fatal("superseded result must be discarded")
	}
	if !v.Accept("tpl-2") {
		t.Fatal("result for the active template must be accepted")
	}
}

func TestView_TemplatesCopyDoesNotAlias(t *testing.T) {
	v := NewView()
	v.Apply(Snapshot{Revision: 1, Templates: []model.Template{
		{ID: "a", Title: "A", Fields: []model.Field{{ID: "f", Label: "L", Type: model.FieldTypeText}}},
	}})

	got := v.Templates()
	got[0].Fields[0].Label = "mutated"

	if v.Templates()[0].Fields[0].Label != "L" {
		t.Fatal("mutating a returned copy must not change the view")
	}
}

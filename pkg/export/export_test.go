package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lumenarts/forge/pkg/model"
)

func signupTemplate() model.Template {
	return model.Template{
		ID:    "tpl-1",
		Title: "Volunteer Signup",
		Fields: []model.Field{
			{ID: "1", Label: "Full Name", Type: model.FieldTypeText},
			{ID: "2", Label: "Interest", Type: model.FieldTypeSelect, Options: []string{"Events", "Gallery"}},
		},
	}
}

func TestRows_ConcreteScenario(t *testing.T) {
	// Entry keyed by label, Interest unset: the label shim must still find
	// the name and the missing value must render as the placeholder.
	entry := model.Entry{Values: map[string]any{"Full Name": "Jane Doe"}}

	rows, err := Rows(signupTemplate(), entry)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := []Row{
		{Field: "Full Name", Value: "Jane Doe"},
		{Field: "Interest", Value: Placeholder},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRows_OrderFollowsTemplateNotEntry(t *testing.T) {
	tpl := model.Template{
		Title: "Ordering",
		Fields: []model.Field{
			{ID: "c", Label: "C", Type: model.FieldTypeText},
			{ID: "a", Label: "A", Type: model.FieldTypeText},
			{ID: "b", Label: "B", Type: model.FieldTypeText},
		},
	}
	entry := model.Entry{Values: map[string]any{"a": "1", "b": "2", "c": "3"}}

	rows, err := Rows(tpl, entry)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}

	var labels []string
	for _, row := range rows {
		labels = append(labels, row.Field)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, labels); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRows_Formatting(t *testing.T) {
	tpl := model.Template{
		Title: "Formats",
		Fields: []model.Field{
			{ID: "ok", Label: "Attending", Type: model.FieldTypeCheckbox},
			{ID: "no", Label: "Waitlisted", Type: model.FieldTypeCheckbox},
			{ID: "when", Label: "Date", Type: model.FieldTypeDate},
			{ID: "count", Label: "Guests", Type: model.FieldTypeNumber},
		},
	}
	entry := model.Entry{Values: map[string]any{
		"ok":    true,
		"no":    false,
		"when":  "2024-05-15",
		"count": float64(3),
	}}

	rows, err := Rows(tpl, entry)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := []Row{
		{Field: "Attending", Value: "Yes"},
		{Field: "Waitlisted", Value: "No"},
		{Field: "Date", Value: "2024-05-15"},
		{Field: "Guests", Value: "3"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRows_UnknownTypeFails(t *testing.T) {
	tpl := signupTemplate()
	tpl.Fields[0].Type = model.FieldType("hologram")

	_, err := Rows(tpl, model.Entry{})
	var unknown *model.UnknownFieldTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldTypeError, got %v", err)
	}
}

func TestTextExport_Idempotent(t *testing.T) {
	exporter := NewText()
	entry := model.Entry{Values: map[string]any{"1": "Jane Doe"}}

	first, err := exporter.Export(context.Background(), signupTemplate(), entry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	second, err := exporter.Export(context.Background(), signupTemplate(), entry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical inputs must produce byte-identical output")
	}

	text := string(first)
	if !strings.HasPrefix(text, "Volunteer Signup\n") {
		t.Fatalf("missing title line:\n%s", text)
	}
	nameRow := strings.Index(text, "Jane Doe")
	interestRow := strings.Index(text, Placeholder)
	if nameRow == -1 || interestRow == -1 || nameRow > interestRow {
		t.Fatalf("unexpected row layout:\n%s", text)
	}
}

func TestCSVExport(t *testing.T) {
	exporter := NewCSV()
	entry := model.Entry{Values: map[string]any{"1": "Jane, Doe"}}

	out, err := exporter.Export(context.Background(), signupTemplate(), entry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, `"Jane, Doe"`) {
		t.Fatalf("expected quoted csv value:\n%s", text)
	}
	if !strings.Contains(text, "Interest,"+Placeholder) {
		t.Fatalf("expected placeholder row:\n%s", text)
	}
}

func TestHTMLExport_SanitisesRichText(t *testing.T) {
	tpl := model.Template{
		Title: "Artist Bio",
		Fields: []model.Field{
			{ID: "bio", Label: "Bio", Type: model.FieldTypeRichText},
		},
	}
	entry := model.Entry{Values: map[string]any{
		"bio": `<p>Painter</p><script>alert("x")</script>`,
	}}

	exporter, err := NewHTML()
	if err != nil {
		t.Fatalf("new html exporter: %v", err)
	}
	out, err := exporter.Export(context.Background(), tpl, entry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag survived sanitisation:\n%s", html)
	}
	if !strings.Contains(html, "<p>Painter</p>") {
		t.Fatalf("benign markup should survive:\n%s", html)
	}
	if !strings.Contains(html, "Artist Bio") {
		t.Fatalf("missing title:\n%s", html)
	}
}

func TestHTMLExport_PlaceholderRow(t *testing.T) {
	exporter, err := NewHTML()
	if err != nil {
		t.Fatalf("new html exporter: %v", err)
	}
	out, err := exporter.Export(context.Background(), signupTemplate(), model.Entry{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if count := strings.Count(string(out), Placeholder); count != 2 {
		t.Fatalf("expected 2 placeholder cells, got %d:\n%s", count, out)
	}
}

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	intmodel "github.com/lumenarts/forge/internal/model"
)

type fakeChat struct {
	reply    string
	err      error
	received []*schema.Message
}

func (f *fakeChat) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.received = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChat) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not used")
}

func signupTemplate() intmodel.Template {
	return intmodel.Template{
		ID:    "vol-signup",
		Title: "Volunteer Signup",
		Fields: []intmodel.Field{
			{ID: "name", Label: "Full Name", Type: intmodel.FieldTypeText},
			{ID: "interest", Label: "Interest", Type: intmodel.FieldTypeText},
		},
	}
}

func TestSuggestDescription_PromptsWithTitleAndLabels(t *testing.T) {
	chat := &fakeChat{reply: "  Sign up to help out.  "}
	assistant := NewWithModel(chat, zap.NewNop())

	got, err := assistant.SuggestDescription(context.Background(), signupTemplate())
	if err != nil {
		t.Fatalf("SuggestDescription: %v", err)
	}
	if got != "Sign up to help out." {
		t.Errorf("got %q, want trimmed reply", got)
	}

	if len(chat.received) != 2 {
		t.Fatalf("messages = %d, want system + user", len(chat.received))
	}
	if chat.received[0].Role != schema.System {
		t.Errorf("first message role = %s", chat.received[0].Role)
	}
	user := chat.received[1].Content
	for _, want := range []string{"Volunteer Signup", "Full Name", "Interest"} {
		if !strings.Contains(user, want) {
			t.Errorf("prompt missing %q:\n%s", want, user)
		}
	}
}

func TestAnnounce_FeedsExportRows(t *testing.T) {
	chat := &fakeChat{reply: "Welcome Jane!"}
	assistant := NewWithModel(chat, zap.NewNop())

	tmpl := signupTemplate()
	entry := intmodel.Entry{
		TemplateID: tmpl.ID,
		Values:     map[string]any{"name": "Jane Doe"},
	}
	got, err := assistant.Announce(context.Background(), tmpl, entry)
	if err != nil {
		t.Fatalf("Announce: %v", err)
	}
	if got != "Welcome Jane!" {
		t.Errorf("got %q", got)
	}

	user := chat.received[1].Content
	if !strings.Contains(user, "Full Name: Jane Doe") {
		t.Errorf("prompt missing filled row:\n%s", user)
	}
	if !strings.Contains(user, "Interest: N/A") {
		t.Errorf("prompt missing placeholder row:\n%s", user)
	}
}

func TestCritique_IncludesDraft(t *testing.T) {
	chat := &fakeChat{reply: "- Lead with the date."}
	assistant := NewWithModel(chat, zap.NewNop())

	got, err := assistant.Critique(context.Background(), signupTemplate(), "Come volunteer with us sometime!")
	if err != nil {
		t.Fatalf("Critique: %v", err)
	}
	if got != "- Lead with the date." {
		t.Errorf("got %q", got)
	}
	user := chat.received[1].Content
	if !strings.Contains(user, "Come volunteer with us sometime!") {
		t.Errorf("prompt missing draft:\n%s", user)
	}
}

func TestGenerate_WrapsModelError(t *testing.T) {
	chat := &fakeChat{err: errors.New("rate limited")}
	assistant := NewWithModel(chat, zap.NewNop())

	_, err := assistant.SuggestDescription(context.Background(), signupTemplate())
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v", err)
	}
}

// Package ai drafts copy for templates and completed entries with a
// chat model. It is an optional surface; the rest of the system never
// depends on it.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/lumenarts/forge/internal/config"
	intmodel "github.com/lumenarts/forge/internal/model"
	"github.com/lumenarts/forge/pkg/export"
)

const systemPrompt = "You write concise copy for a community arts organisation. " +
	"Answer with the requested text only, no preamble."

// Assistant wraps a chat model behind task-shaped methods.
type Assistant struct {
	chat model.BaseChatModel
	log  *zap.Logger
}

// New connects to an OpenAI-compatible endpoint.
func New(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (*Assistant, error) {
	mc := &openai.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	if cfg.BaseURL != "" {
		mc.BaseURL = cfg.BaseURL
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		mc.MaxTokens = &maxTokens
	}
	chat, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, fmt.Errorf("ai: create chat model: %w", err)
	}
	return &Assistant{chat: chat, log: log}, nil
}

// NewWithModel injects a prebuilt chat model, used by tests.
func NewWithModel(chat model.BaseChatModel, log *zap.Logger) *Assistant {
	return &Assistant{chat: chat, log: log}
}

// SuggestDescription drafts a one-sentence description for a template
// from its title and field labels.
func (a *Assistant) SuggestDescription(ctx context.Context, t intmodel.Template) (string, error) {
	labels := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		labels = append(labels, f.Label)
	}
	prompt := fmt.Sprintf(
		"Write a one-sentence description for a form titled %q that collects: %s.",
		t.Title, strings.Join(labels, ", "))
	return a.generate(ctx, prompt)
}

// Announce drafts a short announcement from a completed entry, feeding
// the model the same rows an export would show.
func (a *Assistant) Announce(ctx context.Context, t intmodel.Template, e intmodel.Entry) (string, error) {
	rows, err := export.Rows(t, e)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Write a two-sentence announcement based on this %q submission:\n", t.Title)
	for _, row := range rows {
		fmt.Fprintf(&b, "- %s: %s\n", row.Field, row.Value)
	}
	return a.generate(ctx, b.String())
}

// Critique reviews a human-written draft against the template's purpose
// and returns actionable feedback.
func (a *Assistant) Critique(ctx context.Context, t intmodel.Template, draft string) (string, error) {
	prompt := fmt.Sprintf(
		"Critique this draft announcement for the %q form in at most three bullet points:\n\n%s",
		t.Title, draft)
	return a.generate(ctx, prompt)
}

func (a *Assistant) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("ai: generate: %w", err)
	}
	a.log.Debug("generated copy", zap.Int("chars", len(resp.Content)))
	return strings.TrimSpace(resp.Content), nil
}

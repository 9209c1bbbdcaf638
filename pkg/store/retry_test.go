package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumenarts/forge/pkg/model"
)

// flaky fails every operation with ErrUnavailable until the remaining
// counter drains, then delegates to the wrapped memory store.
type flaky struct {
	*Memory
	remaining int
}

func (f *flaky) Create(ctx context.Context, t model.Template) (string, error) {
	if f.remaining > 0 {
		f.remaining--
		return "", ErrUnavailable
	}
	return f.Memory.Create(ctx, t)
}

func TestRetrying_RecoversFromTransientFailure(t *testing.T) {
	inner := &flaky{Memory: NewMemory(), remaining: 2}
	r := NewRetrying(inner, WithAttempts(4), WithBaseDelay(time.Millisecond))

	id, err := r.Create(context.Background(), validTemplate("Survey"))
	if err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if id == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestRetrying_GivesUpEventually(t *testing.T) {
	inner := &flaky{Memory: NewMemory(), remaining: 10}
	r := NewRetrying(inner, WithAttempts(3), WithBaseDelay(time.Millisecond))

	_, err := r.Create(context.Background(), validTemplate("Survey"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable after exhausting attempts, got %v", err)
	}
	if inner.remaining != 7 {
		t.Fatalf("expected exactly 3 attempts, %d failures left", inner.remaining)
	}
}

func TestRetrying_DoesNotRetryValidationFailures(t *testing.T) {
	inner := &flaky{Memory: NewMemory()}
	r := NewRetrying(inner, WithAttempts(5), WithBaseDelay(time.Millisecond))

	_, err := r.Create(context.Background(), model.Template{Title: "No Fields"})
	if err == nil || errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected immediate validation failure, got %v", err)
	}
}

func TestRetrying_NotFoundIsTerminal(t *testing.T) {
	r := NewRetrying(NewMemory(), WithAttempts(5), WithBaseDelay(time.Millisecond))

	if err := r.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

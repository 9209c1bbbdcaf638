package store

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lumenarts/forge/pkg/model"
)

// Retrying decorates a Store with bounded backoff on ErrUnavailable. Only
// unavailability is retried; validation failures and missing templates
// return immediately.
type Retrying struct {
	inner    Store
	attempts uint64
	base     time.Duration
}

// RetryOption configures the decorator.
type RetryOption func(*Retrying)

// WithAttempts caps the total number of tries, the first call included.
func WithAttempts(n uint64) RetryOption {
	return func(r *Retrying) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithBaseDelay sets the initial backoff interval.
func WithBaseDelay(d time.Duration) RetryOption {
	return func(r *Retrying) {
		if d > 0 {
			r.base = d
		}
	}
}

// NewRetrying wraps inner with retry-on-unavailable semantics.
func NewRetrying(inner Store, options ...RetryOption) *Retrying {
	r := &Retrying{
		inner:    inner,
		attempts: 4,
		base:     100 * time.Millisecond,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Retrying) backoff() retry.Backoff {
	return retry.WithMaxRetries(r.attempts-1, retry.NewFibonacci(r.base))
}

func (r *Retrying) do(ctx context.Context, op func(context.Context) error) error {
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		err := op(ctx)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (r *Retrying) Create(ctx context.Context, t model.Template) (string, error) {
	var id string
	err := r.do(ctx, func(ctx context.Context) error {
		var opErr error
		id, opErr = r.inner.Create(ctx, t)
		return opErr
	})
	return id, err
}

func (r *Retrying) Update(ctx context.Context, id string, t model.Template) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.Update(ctx, id, t)
	})
}

func (r *Retrying) Delete(ctx context.Context, id string) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.Delete(ctx, id)
	})
}

func (r *Retrying) Get(ctx context.Context, id string) (model.Template, error) {
	var out model.Template
	err := r.do(ctx, func(ctx context.Context) error {
		var opErr error
		out, opErr = r.inner.Get(ctx, id)
		return opErr
	})
	return out, err
}

func (r *Retrying) List(ctx context.Context) ([]model.Template, error) {
	var out []model.Template
	err := r.do(ctx, func(ctx context.Context) error {
		var opErr error
		out, opErr = r.inner.List(ctx)
		return opErr
	})
	return out, err
}

func (r *Retrying) Watch(ctx context.Context) (<-chan Snapshot, error) {
	var out <-chan Snapshot
	err := r.do(ctx, func(ctx context.Context) error {
		var opErr error
		out, opErr = r.inner.Watch(ctx)
		return opErr
	})
	return out, err
}

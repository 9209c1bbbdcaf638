// Package store defines the persistence contract for templates and the
// snapshot semantics consumers rely on: read-after-write consistency, full
// snapshot replacement on every emission, and last-writer-wins at whole
// template granularity.
package store

import (
	"context"
	"errors"

	"github.com/lumenarts/forge/pkg/model"
)

var (
	// ErrUnavailable signals a store operation failed without partial
	// effect. Callers leave in-memory state unchanged and surface the
	// failure; they never assume partial success.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrNotFound reports a template id the store does not hold.
	ErrNotFound = errors.New("store: template not found")
)

// Snapshot is a full replacement of the template list. Revision increases
// with recency so consumers can discard stale emissions; each snapshot is
// authoritative and replaces the previous view wholesale, no incremental
// merging.
type Snapshot struct {
	Templates []model.Template
	Revision  uint64
}

// Store is the persistence boundary for templates. After Create, Update or
// Delete return successfully, the next List call and the next Watch emission
// reflect the change. Implementations must reject templates that fail
// model.Validate: validation strictly precedes any write, so a half-written
// template can never exist.
type Store interface {
	Create(ctx context.Context, t model.Template) (string, error)
	Update(ctx context.Context, id string, t model.Template) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Template, error)
	List(ctx context.Context) ([]model.Template, error)
	// Watch yields full-snapshot replacements, starting with the current
	// state, until ctx is cancelled. Slow consumers observe the latest
	// snapshot rather than every intermediate one.
	Watch(ctx context.Context) (<-chan Snapshot, error)
}

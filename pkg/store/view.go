package store

import (
	"sync"

	"github.com/lumenarts/forge/pkg/model"
)

// View holds the latest full template list as an owned, exclusively-mutable
// value. Each accepted snapshot replaces the previous state wholesale; there
// is no shared mutable global and no incremental merging. It also carries the
// last-request-wins guard for async results that may arrive after the user
// moved on to another template.
type View struct {
	mu        sync.Mutex
	templates []model.Template
	revision  uint64
	seeded    bool
	activeID  string
}

// NewView returns an empty view.
func NewView() *View {
	return &View{}
}

// Apply replaces the view with snap unless snap is older than what the view
// already holds. It reports whether the snapshot was accepted.
func (v *View) Apply(snap Snapshot) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seeded && snap.Revision <= v.revision {
		return false
	}
	v.templates = make([]model.Template, len(snap.Templates))
	for i, t := range snap.Templates {
		v.templates[i] = t.Clone()
	}
	v.revision = snap.Revision
	v.seeded = true
	return true
}

// Templates returns a copy of the current list.
func (v *View) Templates() []model.Template {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Template, len(v.templates))
	for i, t := range v.templates {
		out[i] = t.Clone()
	}
	return out
}

// Revision reports the revision of the applied snapshot.
func (v *View) Revision() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.revision
}

// SetActive records the template the session is currently working on.
func (v *View) SetActive(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeID = id
}

// Accept reports whether an async result for the given template id is still
// relevant. Results for a template the user has switched away from are
// discarded so a superseded request can never overwrite newer state.
func (v *View) Accept(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeID == id
}

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumenarts/forge/pkg/model"
)

// Memory is the reference Store: an in-process template list with snapshot
// fan-out. It backs tests and single-process deployments and doubles as the
// behavioural spec for the document-database implementation.
type Memory struct {
	mu          sync.Mutex
	templates   map[string]model.Template
	order       []string
	revision    uint64
	subscribers map[int]chan Snapshot
	nextSub     int
	unavailable bool

	now func() time.Time
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		templates:   make(map[string]model.Template),
		subscribers: make(map[int]chan Snapshot),
		now:         time.Now,
	}
}

// SetUnavailable toggles failure injection: while set, every operation fails
// with ErrUnavailable and leaves state untouched.
func (m *Memory) SetUnavailable(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = down
}

func (m *Memory) Create(ctx context.Context, t model.Template) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := model.Validate(t).Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return "", ErrUnavailable
	}

	stored := t.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = m.now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	m.templates[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	m.broadcastLocked()
	return stored.ID, nil
}

func (m *Memory) Update(ctx context.Context, id string, t model.Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := model.Validate(t).Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrUnavailable
	}
	current, ok := m.templates[id]
	if !ok {
		return ErrNotFound
	}

	// Whole-template replacement: no field-level merge, last writer wins.
	stored := t.Clone()
	stored.ID = id
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = m.now().UTC()
	m.templates[id] = stored
	m.broadcastLocked()
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrUnavailable
	}
	if _, ok := m.templates[id]; !ok {
		return ErrNotFound
	}
	delete(m.templates, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.broadcastLocked()
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (model.Template, error) {
	if err := ctx.Err(); err != nil {
		return model.Template{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return model.Template{}, ErrUnavailable
	}
	stored, ok := m.templates[id]
	if !ok {
		return model.Template{}, ErrNotFound
	}
	return stored.Clone(), nil
}

func (m *Memory) List(ctx context.Context) ([]model.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return nil, ErrUnavailable
	}
	return m.listLocked(), nil
}

func (m *Memory) Watch(ctx context.Context) (<-chan Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.unavailable {
		m.mu.Unlock()
		return nil, ErrUnavailable
	}
	id := m.nextSub
	m.nextSub++
	// Capacity one plus drain-before-send means a slow consumer always
	// observes the most recent snapshot.
	ch := make(chan Snapshot, 1)
	m.subscribers[id] = ch
	ch <- Snapshot{Templates: m.listLocked(), Revision: m.revision}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (m *Memory) listLocked() []model.Template {
	out := make([]model.Template, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.templates[id].Clone())
	}
	return out
}

func (m *Memory) broadcastLocked() {
	m.revision++
	snap := Snapshot{Templates: m.listLocked(), Revision: m.revision}
	for _, ch := range m.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

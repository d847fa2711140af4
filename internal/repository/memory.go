package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/validate"
)

// MemoryEventRepository keeps events in process memory. It backs the
// "memory" driver and the service and handler tests.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string]model.Event
	now    func() time.Time
}

// NewMemoryEventRepository returns an empty in-memory store.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make(map[string]model.Event),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func memoryKey(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}

// List returns all events ordered by start ascending.
func (r *MemoryEventRepository) List(_ context.Context) ([]model.Event, error) {
	r.mu.RLock()
	events := make([]model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e)
	}
	r.mu.RUnlock()

	sortByStart(events)
	return events, nil
}

// GetByID returns a copy of the stored event or ErrNotFound.
func (r *MemoryEventRepository) GetByID(_ context.Context, id string) (*model.Event, error) {
	key, err := memoryKey(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

// Create stores e under a new UUID.
func (r *MemoryEventRepository) Create(_ context.Context, e model.Event) (*model.Event, error) {
	if err := validate.Event(e); err != nil {
		return nil, err
	}
	now := r.now()
	e.ID = uuid.New().String()
	e.Start, e.End = e.Start.UTC(), e.End.UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	r.mu.Lock()
	r.events[e.ID] = e
	r.mu.Unlock()
	return &e, nil
}

// Update overwrites an existing event, keeping its creation time.
func (r *MemoryEventRepository) Update(_ context.Context, e model.Event) (*model.Event, error) {
	key, err := memoryKey(e.ID)
	if err != nil {
		return nil, err
	}
	if err := validate.Event(e); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.events[key]
	if !ok {
		return nil, ErrNotFound
	}
	e.ID = key
	e.Start, e.End = e.Start.UTC(), e.End.UTC()
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = r.now()
	r.events[key] = e
	return &e, nil
}

// Delete removes an event and returns it.
func (r *MemoryEventRepository) Delete(_ context.Context, id string) (*model.Event, error) {
	key, err := memoryKey(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.events, key)
	return &e, nil
}

// Package repository persists calendar events. Every backend validates a
// record with the shared rule set before writing it and stamps createdAt /
// updatedAt itself.
package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// ErrInvalidID is returned when an id is not in the backend's id format.
var ErrInvalidID = errors.New("invalid event id format")

// EventRepository is the storage contract shared by all backends.
type EventRepository interface {
	// List returns all events ordered by start ascending.
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// Create assigns an id and timestamps and stores the event.
	Create(ctx context.Context, e model.Event) (*model.Event, error)
	// Update replaces the stored fields of e.ID and bumps updatedAt.
	Update(ctx context.Context, e model.Event) (*model.Event, error)
	// Delete removes the event and returns what was stored.
	Delete(ctx context.Context, id string) (*model.Event, error)
}

// sortByStart orders events by start, then creation time, then id.
func sortByStart(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/metrics"
	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/repository"
	"github.com/Shivanand-hulikatti/event-calendar/internal/validate"
)

// EventService orchestrates event operations.
type EventService struct {
	events repository.EventRepository
	// loc interprets timestamps that carry no zone.
	loc *time.Location
}

// NewEventService constructs an EventService.
func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{events: events, loc: time.UTC}
}

// ListEvents returns all events ordered by start.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrInvalidID
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// CreateEvent validates the payload, normalizes all-day boundaries and
// stores the event.
func (s *EventService) CreateEvent(ctx context.Context, in model.EventInput) (*model.Event, error) {
	e, err := validate.NewEvent(in, s.loc)
	if err != nil {
		return nil, rejected(err)
	}
	e.NormalizeAllDay()

	created, err := s.events.Create(ctx, e)
	if err != nil {
		if isDomainError(err) {
			return nil, rejected(err)
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	metrics.EventMutations.WithLabelValues("create").Inc()
	return created, nil
}

// UpdateEvent merges the fields present in the payload onto the stored
// event. Ordering is checked on the merged values before all-day
// normalization, so end <= start is rejected even for all-day events.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in model.EventInput) (*model.Event, error) {
	existing, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := validate.Merge(*existing, in, s.loc)
	if err != nil {
		return nil, rejected(err)
	}
	merged.NormalizeAllDay()

	updated, err := s.events.Update(ctx, merged)
	if err != nil {
		if isDomainError(err) {
			return nil, rejected(err)
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	metrics.EventMutations.WithLabelValues("update").Inc()
	return updated, nil
}

// DeleteEvent removes an event and returns the deleted record.
func (s *EventService) DeleteEvent(ctx context.Context, id string) (*model.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrInvalidID
	}
	deleted, err := s.events.Delete(ctx, id)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	metrics.EventMutations.WithLabelValues("delete").Inc()
	return deleted, nil
}

// isDomainError reports errors that handlers translate to 4xx responses.
func isDomainError(err error) bool {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return true
	}
	_, ok := model.AsValidation(err)
	return ok
}

func rejected(err error) error {
	if ve, ok := model.AsValidation(err); ok {
		metrics.ValidationFailures.WithLabelValues(string(ve.Kind())).Inc()
	}
	return err
}

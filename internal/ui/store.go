// Package ui is the terminal calendar front end. It talks to the API only
// through an EventAPI and keeps its list state in a reducer.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shivanand-hulikatti/event-calendar/internal/client"
	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

// EventAPI is the subset of the HTTP client the UI needs.
type EventAPI interface {
	List(ctx context.Context) ([]model.Event, error)
	Create(ctx context.Context, in model.EventInput) (*model.Event, error)
	Update(ctx context.Context, id string, in model.EventInput) (*model.Event, error)
	Delete(ctx context.Context, id string) (*model.Event, error)
}

// State is the client-side copy of the event list.
type State struct {
	Events  []model.Event
	Loading bool
	Err     string
}

// Operation names carried by RequestFailed.
const (
	OpFetch  = "fetch"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Messages produced by the API commands and consumed by Reduce.
type (
	FetchStarted  struct{}
	EventsLoaded  struct{ Events []model.Event }
	EventCreated  struct{ Event model.Event }
	EventUpdated  struct{ Event model.Event }
	EventDeleted  struct{ ID string }
	RequestFailed struct {
		Op  string
		Err error
	}
)

// Message is the user-facing text of the failure.
func (f RequestFailed) Message() string {
	return client.Message(f.Err)
}

// Reduce applies one result to s. Mutations land only after the server
// confirmed them; failures of create, update and delete leave the list as
// it was. s is never modified in place.
func Reduce(s State, msg tea.Msg) State {
	switch msg := msg.(type) {
	case FetchStarted:
		s.Loading = true
		s.Err = ""
	case EventsLoaded:
		s.Events = append([]model.Event(nil), msg.Events...)
		s.Loading = false
		s.Err = ""
	case EventCreated:
		events := make([]model.Event, 0, len(s.Events)+1)
		s.Events = append(append(events, s.Events...), msg.Event)
	case EventUpdated:
		events := make([]model.Event, len(s.Events))
		for i, e := range s.Events {
			if e.ID == msg.Event.ID {
				e = msg.Event
			}
			events[i] = e
		}
		s.Events = events
	case EventDeleted:
		events := make([]model.Event, 0, len(s.Events))
		for _, e := range s.Events {
			if e.ID != msg.ID {
				events = append(events, e)
			}
		}
		s.Events = events
	case RequestFailed:
		if msg.Op == OpFetch {
			s.Loading = false
			s.Err = msg.Message()
		}
	}
	return s
}

func fetchEvents(api EventAPI) tea.Cmd {
	return func() tea.Msg {
		events, err := api.List(context.Background())
		if err != nil {
			return RequestFailed{Op: OpFetch, Err: err}
		}
		return EventsLoaded{Events: events}
	}
}

func createEvent(api EventAPI, in model.EventInput) tea.Cmd {
	return func() tea.Msg {
		e, err := api.Create(context.Background(), in)
		if err != nil {
			return RequestFailed{Op: OpCreate, Err: err}
		}
		return EventCreated{Event: *e}
	}
}

func updateEvent(api EventAPI, id string, in model.EventInput) tea.Cmd {
	return func() tea.Msg {
		e, err := api.Update(context.Background(), id, in)
		if err != nil {
			return RequestFailed{Op: OpUpdate, Err: err}
		}
		return EventUpdated{Event: *e}
	}
}

func deleteEvent(api EventAPI, id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := api.Delete(context.Background(), id); err != nil {
			return RequestFailed{Op: OpDelete, Err: err}
		}
		return EventDeleted{ID: id}
	}
}

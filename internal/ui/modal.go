package ui

import (
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

// ModalMode is the state of the event form modal.
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreating
	ModalEditing
)

func (m ModalMode) String() string {
	switch m {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Modal tracks which form is open. Transitions only go through closed:
// closed -> creating -> closed and closed -> editing -> closed.
type Modal struct {
	Mode ModalMode
	// Date seeds a create form; zero means "now".
	Date  time.Time
	Event *model.Event
}

// IsOpen reports whether a form is showing.
func (m Modal) IsOpen() bool { return m.Mode != ModalClosed }

// OpenCreate opens the create form, optionally seeded with a date.
func (m Modal) OpenCreate(date time.Time) Modal {
	if m.IsOpen() {
		return m
	}
	return Modal{Mode: ModalCreating, Date: date}
}

// OpenEdit opens the edit form for e.
func (m Modal) OpenEdit(e model.Event) Modal {
	if m.IsOpen() {
		return m
	}
	return Modal{Mode: ModalEditing, Event: &e}
}

// Close returns to the closed state and drops any seed.
func (m Modal) Close() Modal {
	return Modal{}
}

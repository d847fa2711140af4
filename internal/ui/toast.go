package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastTTL is how long a notification stays on screen.
const ToastTTL = 3 * time.Second

// ToastKind selects the notification style.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is one transient notification.
type Toast struct {
	ID   int
	Kind ToastKind
	Text string
}

type toastExpiredMsg struct{ id int }

// Toasts is the stack of visible notifications, oldest first.
type Toasts struct {
	items []Toast
	next  int
}

// Push adds a notification and returns the command that expires it.
func (t Toasts) Push(kind ToastKind, text string) (Toasts, tea.Cmd) {
	t.next++
	id := t.next
	t.items = append(append([]Toast(nil), t.items...), Toast{ID: id, Kind: kind, Text: text})
	return t, tea.Tick(ToastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// Expire drops the notification with id.
func (t Toasts) Expire(id int) Toasts {
	items := make([]Toast, 0, len(t.items))
	for _, it := range t.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	t.items = items
	return t
}

// Items returns the visible notifications.
func (t Toasts) Items() []Toast { return t.items }

func (t Toasts) View() string {
	lines := make([]string, 0, len(t.items))
	for _, it := range t.items {
		if it.Kind == ToastError {
			lines = append(lines, errorStyle.Render("✖ "+it.Text))
			continue
		}
		lines = append(lines, successStyle.Render("✔ "+it.Text))
	}
	return strings.Join(lines, "\n")
}

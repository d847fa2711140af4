package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

type confirmedMsg struct {
	ok bool
	id string
}

// Confirm asks before deleting an event.
type Confirm struct {
	event model.Event
}

// NewConfirm builds the delete prompt for e.
func NewConfirm(e model.Event) *Confirm {
	return &Confirm{event: e}
}

// Update answers y/n. Any other key is ignored.
func (c *Confirm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		return func() tea.Msg { return confirmedMsg{ok: true, id: c.event.ID} }
	case "n", "N", "esc":
		return func() tea.Msg { return confirmedMsg{ok: false, id: c.event.ID} }
	}
	return nil
}

func (c *Confirm) View() string {
	body := fmt.Sprintf("%s\n\nAre you sure you want to delete %q?\n\n%s",
		titleStyle.Render("Delete Event"),
		c.event.Title,
		helpStyle.Render("y delete • n cancel"),
	)
	return modalStyle.Render(body)
}

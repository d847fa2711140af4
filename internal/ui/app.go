package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

type keyMap struct {
	Left, Right, Up, Down key.Binding
	Prev, Next, Today     key.Binding
	Add, Open, Select     key.Binding
	Edit, Delete, Refresh key.Binding
	Quit                  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Today, k.Next, k.Add, k.Select, k.Edit, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Prev, k.Today, k.Next},
		{k.Add, k.Open, k.Select, k.Edit, k.Delete},
		{k.Refresh, k.Quit},
	}
}

var keys = keyMap{
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
	Prev:    key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev month")),
	Next:    key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next month")),
	Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add event")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add on day")),
	Select:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select event")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// App is the root Bubble Tea model.
type App struct {
	api     EventAPI
	loc     *time.Location
	now     func() time.Time
	state   State
	cal     Calendar
	modal   Modal
	form    Form
	confirm *Confirm
	toasts  Toasts
	help    help.Model

	// selected is the ID of the highlighted event on the cursor day.
	selected string
	width    int
}

// NewApp builds the UI around api. loc is the display zone.
func NewApp(api EventAPI, loc *time.Location) App {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now
	return App{
		api:   api,
		loc:   loc,
		now:   now,
		state: State{Loading: true},
		cal:   NewCalendar(now(), loc),
		help:  help.New(),
		width: 100,
	}
}

// Run starts the program on the terminal.
func Run(api EventAPI) error {
	_, err := tea.NewProgram(NewApp(api, time.Local), tea.WithAltScreen()).Run()
	return err
}

func (a App) Init() tea.Cmd { return fetchEvents(a.api) }

// State returns the current list state.
func (a App) State() State { return a.state }

// Modal returns the modal state machine.
func (a App) Modal() Modal { return a.modal }

// Toasts returns the visible notifications.
func (a App) Toasts() []Toast { return a.toasts.Items() }

// Calendar returns the month view.
func (a App) Calendar() Calendar { return a.cal }

func (a App) toast(kind ToastKind, text string) (App, tea.Cmd) {
	var cmd tea.Cmd
	a.toasts, cmd = a.toasts.Push(kind, text)
	return a, cmd
}

func (a App) openCreate(seed time.Time) App {
	a.modal = a.modal.OpenCreate(seed)
	a.form = NewCreateForm(a.modal.Date, a.now(), a.loc)
	return a
}

func (a App) openEdit(e model.Event) App {
	a.modal = a.modal.OpenEdit(e)
	a.form = NewEditForm(*a.modal.Event, a.loc)
	return a
}

// dayEvents returns the events on the cursor day.
func (a App) dayEvents() []model.Event {
	return EventsOn(a.state.Events, a.cal.Cursor())
}

func (a App) selectedEvent() (model.Event, bool) {
	for _, e := range a.dayEvents() {
		if e.ID == a.selected {
			return e, true
		}
	}
	return model.Event{}, false
}

// cycleSelection highlights the next event on the cursor day.
func (a App) cycleSelection() App {
	events := a.dayEvents()
	if len(events) == 0 {
		a.selected = ""
		return a
	}
	next := 0
	for i, e := range events {
		if e.ID == a.selected {
			next = (i + 1) % len(events)
			break
		}
	}
	a.selected = events[next].ID
	return a
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil

	case toastExpiredMsg:
		a.toasts = a.toasts.Expire(msg.id)
		return a, nil

	case FetchStarted, EventsLoaded:
		a.state = Reduce(a.state, msg)
		return a, nil

	case EventCreated:
		a.state = Reduce(a.state, msg)
		a.modal = a.modal.Close()
		return a.toast(ToastSuccess, "Event created successfully")

	case EventUpdated:
		a.state = Reduce(a.state, msg)
		a.modal = a.modal.Close()
		return a.toast(ToastSuccess, "Event updated successfully")

	case EventDeleted:
		a.state = Reduce(a.state, msg)
		a.confirm = nil
		if a.selected == msg.ID {
			a.selected = ""
		}
		return a.toast(ToastSuccess, "Event deleted successfully")

	case RequestFailed:
		a.state = Reduce(a.state, msg)
		switch msg.Op {
		case OpCreate, OpUpdate:
			a.form = a.form.SetSubmitting(false)
		case OpDelete:
			a.confirm = nil
		}
		return a.toast(ToastError, msg.Message())

	case formSubmittedMsg:
		if msg.mode == ModalEditing {
			return a, updateEvent(a.api, msg.id, msg.input)
		}
		return a, createEvent(a.api, msg.input)

	case formCancelledMsg:
		a.modal = a.modal.Close()
		return a, nil

	case confirmedMsg:
		if !msg.ok {
			a.confirm = nil
			return a, nil
		}
		return a, deleteEvent(a.api, msg.id)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.modal.IsOpen() {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.confirm != nil {
		return a, a.confirm.Update(msg)
	}
	if a.modal.IsOpen() {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Left):
		a.cal = a.cal.Move(-1)
	case key.Matches(msg, keys.Right):
		a.cal = a.cal.Move(1)
	case key.Matches(msg, keys.Up):
		a.cal = a.cal.Move(-7)
	case key.Matches(msg, keys.Down):
		a.cal = a.cal.Move(7)
	case key.Matches(msg, keys.Prev):
		a.cal = a.cal.Prev()
	case key.Matches(msg, keys.Next):
		a.cal = a.cal.Next()
	case key.Matches(msg, keys.Today):
		a.cal = a.cal.Today(a.now())
	case key.Matches(msg, keys.Add):
		return a.openCreate(time.Time{}), nil
	case key.Matches(msg, keys.Open):
		return a.openCreate(a.cal.Cursor()), nil
	case key.Matches(msg, keys.Select):
		return a.cycleSelection(), nil
	case key.Matches(msg, keys.Edit):
		if e, ok := a.selectedEvent(); ok {
			return a.openEdit(e), nil
		}
		return a, nil
	case key.Matches(msg, keys.Delete):
		if e, ok := a.selectedEvent(); ok {
			a.confirm = NewConfirm(e)
		}
		return a, nil
	case key.Matches(msg, keys.Refresh):
		a.state = Reduce(a.state, FetchStarted{})
		return a, fetchEvents(a.api)
	default:
		return a, nil
	}
	// The cursor moved; the highlight belongs to the previous day.
	a.selected = ""
	return a, nil
}

func (a App) toolbar() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		buttonStyle.Render("‹ Prev"),
		buttonStyle.Render("Today"),
		buttonStyle.Render("Next ›"),
		"  ",
		titleStyle.Render(a.cal.Title()),
		"  ",
		buttonStyle.Render("+ Add Event"),
	)
	return buttons
}

func (a App) View() string {
	if a.confirm != nil {
		return a.confirm.View()
	}
	if a.modal.IsOpen() {
		return lipgloss.JoinVertical(lipgloss.Left, a.form.View(), a.toasts.View())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Event Calendar") + "\n")
	b.WriteString(a.toolbar() + "\n")
	switch {
	case a.state.Loading:
		b.WriteString(mutedStyle.Render("Loading events...") + "\n")
	case a.state.Err != "":
		b.WriteString(errorStyle.Render(a.state.Err) + "\n")
	}
	b.WriteString(a.cal.View(a.state.Events, a.now(), a.selected, a.width))
	if t := a.toasts.View(); t != "" {
		b.WriteString(t + "\n")
	}
	b.WriteString(a.help.View(keys))
	return panelStyle.Render(b.String())
}

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/validate"
)

const (
	timedLayout = "2006-01-02 15:04"
	dayLayout   = "2006-01-02"
)

// Field focus order.
const (
	fieldTitle = iota
	fieldDescription
	fieldStart
	fieldEnd
	fieldAllDay
	fieldCount
)

type formSubmittedMsg struct {
	mode  ModalMode
	id    string
	input model.EventInput
}

type formCancelledMsg struct{}

// Form edits one event. Timed values are entered in the local zone and
// sent as UTC; all-day values are entered as days.
type Form struct {
	mode    ModalMode
	eventID string

	title       textinput.Model
	description textarea.Model
	start       textinput.Model
	end         textinput.Model
	allDay      bool

	focus      int
	errors     map[string]string
	submitting bool
	loc        *time.Location
}

func newForm(mode ModalMode, loc *time.Location) Form {
	if loc == nil {
		loc = time.Local
	}
	f := Form{mode: mode, loc: loc}

	f.title = textinput.New()
	f.title.Placeholder = "Event title"
	f.title.CharLimit = validate.MaxTitleLen + 20
	f.title.Width = 40

	f.description = textarea.New()
	f.description.Placeholder = "Optional description"
	f.description.CharLimit = validate.MaxDescriptionLen + 20
	f.description.ShowLineNumbers = false
	f.description.SetWidth(42)
	f.description.SetHeight(3)

	f.start = textinput.New()
	f.start.Width = 20
	f.end = textinput.New()
	f.end.Width = 20

	f.setFocus(fieldTitle)
	return f
}

// NewCreateForm opens an empty form starting at seed (or now when seed is
// zero) and lasting one hour.
func NewCreateForm(seed, now time.Time, loc *time.Location) Form {
	f := newForm(ModalCreating, loc)
	start := seed
	if start.IsZero() {
		start = now.Truncate(time.Minute)
	}
	f.start.SetValue(start.In(f.loc).Format(timedLayout))
	f.end.SetValue(start.Add(time.Hour).In(f.loc).Format(timedLayout))
	return f
}

// NewEditForm fills the form from e.
func NewEditForm(e model.Event, loc *time.Location) Form {
	f := newForm(ModalEditing, loc)
	f.eventID = e.ID
	f.title.SetValue(e.Title)
	f.description.SetValue(e.Description)
	f.allDay = e.AllDay
	if e.AllDay {
		f.start.SetValue(e.Start.UTC().Format(dayLayout))
		f.end.SetValue(e.End.UTC().Format(dayLayout))
	} else {
		f.start.SetValue(e.Start.In(f.loc).Format(timedLayout))
		f.end.SetValue(e.End.In(f.loc).Format(timedLayout))
	}
	return f
}

// Errors returns the inline messages from the last submit attempt.
func (f Form) Errors() map[string]string { return f.errors }

// Submitting reports whether a save is in flight.
func (f Form) Submitting() bool { return f.submitting }

// SetSubmitting is called when the save finished without closing the form.
func (f Form) SetSubmitting(v bool) Form {
	f.submitting = v
	return f
}

// Input builds the request payload from the current field values.
func (f Form) Input() model.EventInput {
	title := f.title.Value()
	description := f.description.Value()
	start := f.timeValue(f.start.Value(), false)
	end := f.timeValue(f.end.Value(), true)
	allDay := f.allDay
	return model.EventInput{
		Title:       &title,
		Description: &description,
		Start:       &start,
		End:         &end,
		AllDay:      &allDay,
	}
}

// timeValue converts an entered value to UTC RFC 3339. Unparseable input is
// passed through so validation reports it.
func (f Form) timeValue(raw string, endOfDay bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if f.allDay {
		t, err := validate.ParseTime(raw, time.UTC)
		if err != nil {
			return raw
		}
		if endOfDay {
			return model.EndOfDayUTC(t).Format(time.RFC3339Nano)
		}
		return model.StartOfDayUTC(t).Format(time.RFC3339Nano)
	}
	t, err := validate.ParseTime(raw, f.loc)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (f *Form) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	f.title.Blur()
	f.description.Blur()
	f.start.Blur()
	f.end.Blur()
	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldStart:
		return f.start.Focus()
	case fieldEnd:
		return f.end.Focus()
	}
	return nil
}

// toggleAllDay switches between day and date-time entry, keeping the dates.
func (f *Form) toggleAllDay() {
	f.allDay = !f.allDay
	if f.allDay {
		for _, in := range []*textinput.Model{&f.start, &f.end} {
			if t, err := validate.ParseTime(in.Value(), f.loc); err == nil {
				in.SetValue(t.In(f.loc).Format(dayLayout))
			}
		}
		return
	}
	if t, err := time.Parse(dayLayout, strings.TrimSpace(f.start.Value())); err == nil {
		f.start.SetValue(t.Format(dayLayout) + " 00:00")
	}
	if t, err := time.Parse(dayLayout, strings.TrimSpace(f.end.Value())); err == nil {
		f.end.SetValue(t.Format(dayLayout) + " 23:59")
	}
}

func (f Form) submit() (Form, tea.Cmd) {
	in := f.Input()
	if errs := validate.Form(in, time.UTC); errs != nil {
		f.errors = errs
		return f, nil
	}
	f.errors = nil
	f.submitting = true
	mode, id := f.mode, f.eventID
	return f, func() tea.Msg { return formSubmittedMsg{mode: mode, id: id, input: in} }
}

// Update handles keys while the form is open.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if f.submitting {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return formCancelledMsg{} }
		case "ctrl+s":
			return f.submit()
		case "tab":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab":
			return f, f.setFocus(f.focus - 1)
		case "enter":
			switch f.focus {
			case fieldAllDay:
				return f.submit()
			case fieldDescription:
			default:
				return f, f.setFocus(f.focus + 1)
			}
		case " ", "x":
			if f.focus == fieldAllDay {
				f.toggleAllDay()
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldStart:
		f.start, cmd = f.start.Update(msg)
	case fieldEnd:
		f.end, cmd = f.end.Update(msg)
	}
	return f, cmd
}

func (f Form) View() string {
	var b strings.Builder
	heading := "Create Event"
	if f.mode == ModalEditing {
		heading = "Edit Event"
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")

	layout := timedLayout
	if f.allDay {
		layout = dayLayout
	}
	field := func(label, key, view string) {
		b.WriteString(label + "\n" + view + "\n")
		if msg := f.errors[key]; msg != "" {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	field("Title *", "title", f.title.View())
	field("Description", "description", f.description.View())
	field("Start * ("+layout+")", "start", f.start.View())
	field("End * ("+layout+")", "end", f.end.View())

	box := "[ ]"
	if f.allDay {
		box = "[x]"
	}
	allDay := box + " All day"
	if f.focus == fieldAllDay {
		allDay = selectedStyle.Render(allDay)
	}
	b.WriteString(allDay + "\n\n")

	action := "Create"
	if f.mode == ModalEditing {
		action = "Update"
	}
	if f.submitting {
		action = "Saving..."
	}
	b.WriteString(buttonStyle.Render(action) + " " + buttonStyle.Render("Cancel") + "\n")
	b.WriteString(helpStyle.Render("tab next field • space toggle all day • ctrl+s save • esc cancel"))
	return modalStyle.Render(b.String())
}

package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

// MaxEventsPerCell is how many events a day cell lists before "+N more".
const MaxEventsPerCell = 2

var weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Calendar is the month view. The cursor is a day in loc; the visible month
// is the cursor's month.
type Calendar struct {
	cursor time.Time
	loc    *time.Location
}

// NewCalendar positions the cursor on today.
func NewCalendar(today time.Time, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{cursor: dayOf(today, loc), loc: loc}
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Cursor returns the selected day at midnight.
func (c Calendar) Cursor() time.Time { return c.cursor }

// Title is the label of the visible period, e.g. "January 2025".
func (c Calendar) Title() string { return c.cursor.Format("January 2006") }

// Prev moves to the previous month, keeping the day where it exists.
func (c Calendar) Prev() Calendar { return c.addMonths(-1) }

// Next moves to the next month.
func (c Calendar) Next() Calendar { return c.addMonths(1) }

// Today jumps back to now.
func (c Calendar) Today(now time.Time) Calendar {
	c.cursor = dayOf(now, c.loc)
	return c
}

// Move shifts the cursor by days.
func (c Calendar) Move(days int) Calendar {
	c.cursor = c.cursor.AddDate(0, 0, days)
	return c
}

func (c Calendar) addMonths(n int) Calendar {
	y, m, d := c.cursor.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, c.loc)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	c.cursor = time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, c.loc)
	return c
}

// Weeks returns the grid of the visible month: whole weeks, Sunday first,
// padded with days of the neighbouring months.
func (c Calendar) Weeks() [][7]time.Time {
	y, m, _ := c.cursor.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, c.loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	var weeks [][7]time.Time
	for day := start; day.Before(first.AddDate(0, 1, 0)); {
		var week [7]time.Time
		for i := range week {
			week[i] = day
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// EventsOn returns the events touching day, all-day events first, then by
// start. All-day events are matched on their UTC dates so they never spill
// into a neighbouring day.
func EventsOn(events []model.Event, day time.Time) []model.Event {
	y, m, d := day.Date()
	var out []model.Event
	for _, e := range events {
		if e.AllDay {
			utcDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			if !utcDay.Before(model.StartOfDayUTC(e.Start)) && !utcDay.After(model.StartOfDayUTC(e.End)) {
				out = append(out, e)
			}
			continue
		}
		from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
		if e.Overlaps(from, from.AddDate(0, 0, 1)) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AllDay != out[j].AllDay {
			return out[i].AllDay
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// cellLines renders the event lines of one day: at most MaxEventsPerCell
// entries, then "+N more".
func cellLines(events []model.Event, loc *time.Location, width int, selected string) []string {
	lines := make([]string, 0, MaxEventsPerCell+1)
	for i, e := range events {
		if i == MaxEventsPerCell {
			lines = append(lines, moreStyle.Render(fmt.Sprintf("+%d more", len(events)-MaxEventsPerCell)))
			break
		}
		label := e.Title
		style := allDayStyle
		if !e.AllDay {
			label = e.Start.In(loc).Format("15:04") + " " + e.Title
			style = timedStyle
		}
		if e.ID == selected {
			style = style.Inherit(selectedStyle)
		}
		lines = append(lines, style.Render(truncate(label, width)))
	}
	return lines
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// View draws the month grid.
func (c Calendar) View(events []model.Event, now time.Time, selected string, width int) string {
	cellW := (width - 2) / 7
	if cellW < 10 {
		cellW = 10
	}
	cell := lipgloss.NewStyle().Width(cellW).Height(MaxEventsPerCell + 2)
	today := dayOf(now, c.loc)

	var b strings.Builder
	head := make([]string, len(weekdays))
	for i, wd := range weekdays {
		head[i] = cell.Height(1).Render(headerStyle.Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	_, month, _ := c.cursor.Date()
	for _, week := range c.Weeks() {
		row := make([]string, len(week))
		for i, day := range week {
			num := fmt.Sprintf("%2d", day.Day())
			switch {
			case day.Equal(c.cursor):
				num = cursorStyle.Render(num)
			case day.Equal(today):
				num = todayStyle.Render(num)
			case day.Month() != month:
				num = mutedStyle.Render(num)
			}
			lines := append([]string{num}, cellLines(EventsOn(events, day), c.loc, cellW-1, selected)...)
			row[i] = cell.Render(strings.Join(lines, "\n"))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

func TestCalendar_Navigation(t *testing.T) {
	c := NewCalendar(time.Date(2025, 1, 31, 15, 0, 0, 0, time.UTC), time.UTC)
	if got := c.Title(); got != "January 2025" {
		t.Fatalf("title = %q", got)
	}

	c = c.Next()
	if got := c.Title(); got != "February 2025" {
		t.Errorf("next title = %q", got)
	}
	if got := c.Cursor().Day(); got != 28 {
		t.Errorf("day clamped to %d, want 28", got)
	}

	c = c.Prev().Prev()
	if got := c.Title(); got != "December 2024" {
		t.Errorf("prev title = %q", got)
	}

	c = c.Today(time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC))
	if got := c.Title(); got != "March 2025" {
		t.Errorf("today title = %q", got)
	}

	c = c.Move(-5)
	if got := c.Title(); got != "February 2025" {
		t.Errorf("moved title = %q", got)
	}
}

func TestCalendar_WeeksStartSunday(t *testing.T) {
	c := NewCalendar(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), time.UTC)
	weeks := c.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("got %d weeks, want 5", len(weeks))
	}
	first := weeks[0][0]
	if first.Weekday() != time.Sunday || first.Month() != time.December || first.Day() != 29 {
		t.Errorf("grid starts %v", first)
	}
	last := weeks[4][6]
	if last.Month() != time.February || last.Day() != 1 {
		t.Errorf("grid ends %v", last)
	}
}

func TestEventsOn(t *testing.T) {
	events := []model.Event{
		{ID: "timed", Title: "Standup", Start: jan10, End: jan10.Add(30 * time.Minute)},
		{ID: "allday", Title: "Offsite", AllDay: true,
			Start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 11, 23, 59, 59, 999e6, time.UTC)},
		{ID: "other", Title: "Later", Start: jan10.AddDate(0, 0, 3), End: jan10.AddDate(0, 0, 3).Add(time.Hour)},
	}

	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	got := EventsOn(events, day)
	if len(got) != 2 || got[0].ID != "allday" || got[1].ID != "timed" {
		t.Fatalf("Jan 10: %+v", got)
	}

	got = EventsOn(events, day.AddDate(0, 0, 1))
	if len(got) != 1 || got[0].ID != "allday" {
		t.Errorf("Jan 11: %+v", got)
	}

	if got := EventsOn(events, day.AddDate(0, 0, 2)); len(got) != 0 {
		t.Errorf("Jan 12: %+v", got)
	}
}

func TestCalendar_ViewOverflow(t *testing.T) {
	var events []model.Event
	for i, title := range []string{"One", "Two", "Three"} {
		start := jan10.Add(time.Duration(i) * time.Hour)
		events = append(events, model.Event{ID: title, Title: title, Start: start, End: start.Add(30 * time.Minute)})
	}
	c := NewCalendar(jan10, time.UTC)
	view := c.View(events, jan10, "", 140)

	for _, want := range []string{"Sun", "Sat", "One", "Two", "+1 more"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Three") {
		t.Error("third event rendered despite the cell limit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Quarterly planning", 10); got != "Quarterly…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Short", 10); got != "Short" {
		t.Errorf("truncate = %q", got)
	}
}

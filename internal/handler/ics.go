package handler

import (
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

const productID = "-//event-calendar//EN"

// ExportCalendar handles GET /api/calendar.ics
// Serves every event as an iCalendar feed.
func (h *EventHandler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="calendar.ics"`)
	_, _ = w.Write([]byte(buildCalendar(events, time.Now().UTC()).Serialize()))
}

func buildCalendar(events []model.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Event Calendar")

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetCreatedTime(e.CreatedAt)
		ve.SetModifiedAt(e.UpdatedAt)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.AllDay {
			// DTEND is exclusive for DATE values.
			ve.SetAllDayStartAt(model.StartOfDayUTC(e.Start))
			ve.SetAllDayEndAt(model.StartOfDayUTC(e.End).AddDate(0, 0, 1))
			continue
		}
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
	}
	return cal
}

package model

import "time"

// StartOfDayUTC returns 00:00:00.000 UTC on t's UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns 23:59:59.999 UTC on t's UTC calendar day.
func EndOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// NormalizeAllDay snaps Start and End to their day boundaries when the
// event is all-day. It never narrows the range.
func (e *Event) NormalizeAllDay() {
	if !e.AllDay {
		return
	}
	e.Start = StartOfDayUTC(e.Start)
	e.End = EndOfDayUTC(e.End)
}

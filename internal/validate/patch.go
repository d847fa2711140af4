package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

var errEmptyTime = errors.New("empty timestamp")

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 and a few zone-less forms, which are read in
// loc. The result is always UTC.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTime
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Patch is a parsed and trimmed payload. Nil fields were not sent.
type Patch struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	AllDay      *bool
}

// ParsePatch trims text fields and parses timestamps. It reports format
// problems only; required, length and ordering rules run on the record.
func ParsePatch(in model.EventInput, loc *time.Location) (Patch, *model.ValidationError) {
	var (
		p  Patch
		ve model.ValidationError
	)
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		p.Title = &t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		p.Description = &d
	}
	p.Start = parseField(&ve, "start", in.Start, loc)
	p.End = parseField(&ve, "end", in.End, loc)
	p.AllDay = in.AllDay
	return p, &ve
}

func parseField(ve *model.ValidationError, field string, raw *string, loc *time.Location) *time.Time {
	if raw == nil {
		return nil
	}
	t, err := ParseTime(*raw, loc)
	switch {
	case errors.Is(err, errEmptyTime):
		add(ve, field, "required")
		return nil
	case err != nil:
		add(ve, field, "format")
		return nil
	}
	return &t
}

// Apply overlays the present fields onto e.
func (p Patch) Apply(e model.Event) model.Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	return e
}

// Empty reports whether the payload carried no fields at all.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Start == nil && p.End == nil && p.AllDay == nil
}

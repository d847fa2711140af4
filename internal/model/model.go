// Package model defines the core domain types for the event calendar.
package model

import "time"

// Event is a single calendar entry. All timestamps are UTC.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Duration returns the span between Start and End.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether the event intersects the half-open range [from, to).
func (e *Event) Overlaps(from, to time.Time) bool {
	return e.Start.Before(to) && e.End.After(from)
}

// EventInput is the payload for creating or updating an event.
// A nil field means the client did not send it.
type EventInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Start       *string `json:"start,omitempty"`
	End         *string `json:"end,omitempty"`
	AllDay      *bool   `json:"allDay,omitempty"`
}

// Response is the uniform JSON envelope returned by every API endpoint.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ErrorResponse is the failure form of Response.
func ErrorResponse(msg string) Response {
	return Response{Success: false, Error: msg}
}

// String returns a pointer to s. Handy when building an EventInput.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

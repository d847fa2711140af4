package model

import (
	"errors"
	"strings"
)

// ErrorKind classifies a failure so the HTTP layer can pick a status code.
type ErrorKind string

const (
	KindRequiredField ErrorKind = "RequiredFieldError"
	KindLength        ErrorKind = "LengthError"
	KindInvalidFormat ErrorKind = "InvalidFormatError"
	KindOrdering      ErrorKind = "OrderingError"
	KindType          ErrorKind = "TypeError"
	KindNotFound      ErrorKind = "NotFoundError"
	KindInternal      ErrorKind = "InternalError"
)

// FieldError is a single rule violation on one event field.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// ValidationError collects every rule violation found on an event.
type ValidationError struct {
	Errors []FieldError
}

// Error joins all messages in field order, matching the API's error string.
func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Errors))
	for _, fe := range v.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, ", ")
}

// Add records a violation unless the field already has one.
func (v *ValidationError) Add(field string, kind ErrorKind, msg string) {
	if v.Has(field) {
		return
	}
	v.Errors = append(v.Errors, FieldError{Field: field, Kind: kind, Message: msg})
}

// Has reports whether field already failed.
func (v *ValidationError) Has(field string) bool {
	for _, fe := range v.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Fields maps field name to message, for inline form errors.
func (v *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(v.Errors))
	for _, fe := range v.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

// Kind returns the kind of the first violation.
func (v *ValidationError) Kind() ErrorKind {
	if len(v.Errors) == 0 {
		return ""
	}
	return v.Errors[0].Kind
}

// OrNil returns v as an error, or nil when it holds no violations.
func (v *ValidationError) OrNil() error {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}
	return v
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

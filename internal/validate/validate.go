// Package validate holds the single rule set for calendar events. The
// service checks request payloads with it, every repository checks records
// with it before writing, and the UI form checks user input with it.
package validate

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// record mirrors model.Event with the declarative rules attached.
type record struct {
	Title       string    `json:"title" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
}

type rule struct {
	kind model.ErrorKind
	msg  string
}

// messages is keyed by "<json field>.<validator tag>".
var messages = map[string]rule{
	"title.required":   {model.KindRequiredField, "Title is required"},
	"title.max":        {model.KindLength, "Title cannot exceed 100 characters"},
	"description.max":  {model.KindLength, "Description cannot exceed 500 characters"},
	"start.required":   {model.KindRequiredField, "Start date is required"},
	"end.required":     {model.KindRequiredField, "End date is required"},
	"end.gtfield":      {model.KindOrdering, "End date must be after start date"},
	"start.format":     {model.KindInvalidFormat, "Invalid start date format"},
	"end.format":       {model.KindInvalidFormat, "Invalid end date format"},
	"allDay.type":      {model.KindType, "allDay must be a boolean value"},
	"title.type":       {model.KindType, "title must be a string"},
	"description.type": {model.KindType, "description must be a string"},
	"start.type":       {model.KindType, "start must be a string"},
	"end.type":         {model.KindType, "end must be a string"},
}

var fieldOrder = map[string]int{"title": 0, "description": 1, "start": 2, "end": 3, "allDay": 4}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

func add(ve *model.ValidationError, field, key string) {
	r, ok := messages[field+"."+key]
	if !ok {
		r = rule{model.KindInternal, field + " is invalid"}
	}
	ve.Add(field, r.kind, r.msg)
}

func sorted(ve *model.ValidationError) *model.ValidationError {
	sort.SliceStable(ve.Errors, func(i, j int) bool {
		return fieldOrder[ve.Errors[i].Field] < fieldOrder[ve.Errors[j].Field]
	})
	return ve
}

// checkRecord runs the struct rules and adds anything not already reported.
func checkRecord(e model.Event, ve *model.ValidationError) {
	rec := record{
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
	}
	err := v.Struct(rec)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.Add("event", model.KindInternal, err.Error())
		return
	}
	for _, fe := range fieldErrs {
		add(ve, fe.Field(), fe.Tag())
	}
}

// Event checks a fully-formed record: the schema-level rule set applied
// before anything is written.
func Event(e model.Event) error {
	var ve model.ValidationError
	checkRecord(e, &ve)
	return sorted(&ve).OrNil()
}

// NewEvent parses and validates a create payload. Zone-less timestamps are
// read in loc. The returned event is trimmed and not yet normalized.
func NewEvent(in model.EventInput, loc *time.Location) (model.Event, error) {
	p, ve := ParsePatch(in, loc)
	e := p.Apply(model.Event{})
	checkRecord(e, ve)
	return e, sorted(ve).OrNil()
}

// Merge applies an update payload to an existing record and validates the
// result. Only fields present in the payload change.
func Merge(existing model.Event, in model.EventInput, loc *time.Location) (model.Event, error) {
	p, ve := ParsePatch(in, loc)
	if err := sorted(ve).OrNil(); err != nil {
		return existing, err
	}
	merged := p.Apply(existing)
	checkRecord(merged, ve)
	return merged, sorted(ve).OrNil()
}

// Form validates UI input and returns inline messages per field, or nil.
func Form(in model.EventInput, loc *time.Location) map[string]string {
	if _, err := NewEvent(in, loc); err != nil {
		if ve, ok := model.AsValidation(err); ok {
			return ve.Fields()
		}
		return map[string]string{"event": err.Error()}
	}
	return nil
}

// DecodeError turns a JSON type mismatch into a TypeError. Any other
// decode failure is returned unchanged.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return err
	}
	field := typeErr.Field
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	if _, known := fieldOrder[field]; !known {
		return err
	}
	ve := &model.ValidationError{}
	add(ve, field, "type")
	return ve
}

package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/repository"
	"github.com/Shivanand-hulikatti/event-calendar/internal/service"
)

func newService(t *testing.T) *service.EventService {
	t.Helper()
	return service.NewEventService(repository.NewMemoryEventRepository())
}

func standup() model.EventInput {
	return model.EventInput{
		Title:  model.String("Standup"),
		Start:  model.String("2025-01-10T09:00:00Z"),
		End:    model.String("2025-01-10T09:30:00Z"),
		AllDay: model.Bool(false),
	}
}

func mustCreate(t *testing.T, svc *service.EventService, in model.EventInput) *model.Event {
	t.Helper()
	e, err := svc.CreateEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	return e
}

func errKind(err error) model.ErrorKind {
	if ve, ok := model.AsValidation(err); ok {
		return ve.Kind()
	}
	return ""
}

func TestCreateThenList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	in := standup()
	in.Description = model.String("  daily  ")

	created := mustCreate(t, svc, in)
	events, err := svc.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.ID != created.ID || got.Title != "Standup" || got.Description != "daily" || got.AllDay {
		t.Errorf("listed %+v", got)
	}
	if !got.Start.Equal(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)) || !got.End.After(got.Start) {
		t.Errorf("times %v – %v", got.Start, got.End)
	}
}

func TestCreate_DescriptionDefaultsToEmpty(t *testing.T) {
	e := mustCreate(t, newService(t), standup())
	if e.Description != "" {
		t.Errorf("description = %q", e.Description)
	}
}

func TestCreate_RejectsAndPersistsNothing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := map[string]func(in *model.EventInput){
		"end equals start":     func(in *model.EventInput) { in.End = in.Start },
		"end before start":     func(in *model.EventInput) { in.End = model.String("2025-01-10T08:00:00Z") },
		"all-day end before":   func(in *model.EventInput) { in.AllDay = model.Bool(true); in.End = model.String("2025-01-10T08:00:00Z") },
		"title too long":       func(in *model.EventInput) { in.Title = model.String(strings.Repeat("x", 101)) },
		"description too long": func(in *model.EventInput) { in.Description = model.String(strings.Repeat("x", 501)) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := standup()
			mutate(&in)
			if _, err := svc.CreateEvent(ctx, in); err == nil {
				t.Fatal("expected rejection")
			}
		})
	}

	events, _ := svc.ListEvents(ctx)
	if len(events) != 0 {
		t.Errorf("rejected creates persisted %d events", len(events))
	}
}

func TestCreate_AllDayNormalization(t *testing.T) {
	in := standup()
	in.AllDay = model.Bool(true)
	in.Start = model.String("2025-01-10T10:17:00Z")
	in.End = model.String("2025-01-10T14:05:00Z")

	e := mustCreate(t, newService(t), in)
	if got := e.Start.Format(time.RFC3339Nano); got != "2025-01-10T00:00:00Z" {
		t.Errorf("start = %s", got)
	}
	if got := e.End.Format(time.RFC3339Nano); got != "2025-01-10T23:59:59.999Z" {
		t.Errorf("end = %s", got)
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc := newService(t)
	orig := mustCreate(t, svc, standup())

	updated, err := svc.UpdateEvent(context.Background(), orig.ID, model.EventInput{Title: model.String("Daily standup")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Daily standup" {
		t.Errorf("title = %q", updated.Title)
	}
	if !updated.Start.Equal(orig.Start) || !updated.End.Equal(orig.End) || updated.AllDay != orig.AllDay {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdate_OrderingRejectedAndUnchanged(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	orig := mustCreate(t, svc, standup())

	_, err := svc.UpdateEvent(ctx, orig.ID, model.EventInput{End: model.String("2025-01-10T08:00:00Z")})
	if errKind(err) != model.KindOrdering {
		t.Fatalf("expected ordering error, got %v", err)
	}

	after, err := svc.GetEvent(ctx, orig.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !after.End.Equal(orig.End) || !after.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Errorf("record changed after rejected update: %+v", after)
	}
}

func TestUpdate_StoredAllDayRenormalizes(t *testing.T) {
	svc := newService(t)
	in := standup()
	in.AllDay = model.Bool(true)
	orig := mustCreate(t, svc, in)

	updated, err := svc.UpdateEvent(context.Background(), orig.ID, model.EventInput{
		Start: model.String("2025-01-12T13:00:00Z"),
		End:   model.String("2025-01-13T08:00:00Z"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := updated.Start.Format(time.RFC3339Nano); got != "2025-01-12T00:00:00Z" {
		t.Errorf("start = %s", got)
	}
	if got := updated.End.Format(time.RFC3339Nano); got != "2025-01-13T23:59:59.999Z" {
		t.Errorf("end = %s", got)
	}
}

func TestUpdate_NotFoundAndInvalidID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.UpdateEvent(ctx, "7f1c0a52-31c5-4a8e-9d2f-5b7e8e0d1a11", standup()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing id: %v", err)
	}
	if _, err := svc.UpdateEvent(ctx, "xyz", standup()); !errors.Is(err, repository.ErrInvalidID) {
		t.Errorf("malformed id: %v", err)
	}
}

func TestDeleteThenList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	keep := mustCreate(t, svc, standup())
	other := standup()
	other.Title = model.String("Lunch")
	gone := mustCreate(t, svc, other)

	deleted, err := svc.DeleteEvent(ctx, gone.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted.Title != "Lunch" {
		t.Errorf("deleted %+v", deleted)
	}

	events, _ := svc.ListEvents(ctx)
	if len(events) != 1 || events[0].ID != keep.ID {
		t.Errorf("remaining events %+v", events)
	}
	if _, err := svc.DeleteEvent(ctx, gone.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

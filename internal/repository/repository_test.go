package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/database"
	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/repository"
)

func at(h, m int) time.Time {
	return time.Date(2025, 1, 10, h, m, 0, 0, time.UTC)
}

func sample(title string, start time.Time) model.Event {
	return model.Event{Title: title, Start: start, End: start.Add(30 * time.Minute)}
}

// runContract exercises the behavior every backend must share.
func runContract(t *testing.T, repo repository.EventRepository, missingID, malformedID string) {
	t.Helper()
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		e, err := repo.Create(ctx, sample("Standup", at(9, 0)))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if e.ID == "" {
			t.Error("no id assigned")
		}
		if e.CreatedAt.IsZero() || !e.CreatedAt.Equal(e.UpdatedAt) {
			t.Errorf("timestamps: created %v updated %v", e.CreatedAt, e.UpdatedAt)
		}
		got, err := repo.GetByID(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Title != "Standup" || !got.Start.Equal(at(9, 0)) {
			t.Errorf("stored %+v", got)
		}
	})

	t.Run("list is ordered by start", func(t *testing.T) {
		if _, err := repo.Create(ctx, sample("Late", at(15, 0))); err != nil {
			t.Fatal(err)
		}
		if _, err := repo.Create(ctx, sample("Early", at(7, 0))); err != nil {
			t.Fatal(err)
		}
		events, err := repo.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(events); i++ {
			if events[i].Start.Before(events[i-1].Start) {
				t.Fatalf("events out of order at %d: %v before %v", i, events[i].Start, events[i-1].Start)
			}
		}
		if events[0].Title != "Early" {
			t.Errorf("first event = %q", events[0].Title)
		}
	})

	t.Run("schema check rejects end before start", func(t *testing.T) {
		bad := sample("Broken", at(10, 0))
		bad.End = at(9, 0)
		_, err := repo.Create(ctx, bad)
		ve, ok := model.AsValidation(err)
		if !ok || ve.Kind() != model.KindOrdering {
			t.Fatalf("expected ordering validation error, got %v", err)
		}
	})

	t.Run("update bumps updatedAt only", func(t *testing.T) {
		e, err := repo.Create(ctx, sample("Review", at(11, 0)))
		if err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
		e.Title = "Design review"
		updated, err := repo.Update(ctx, *e)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Title != "Design review" {
			t.Errorf("title = %q", updated.Title)
		}
		if !updated.CreatedAt.Equal(e.CreatedAt) {
			t.Errorf("createdAt moved: %v -> %v", e.CreatedAt, updated.CreatedAt)
		}
		if !updated.UpdatedAt.After(e.UpdatedAt) {
			t.Errorf("updatedAt not bumped: %v -> %v", e.UpdatedAt, updated.UpdatedAt)
		}
	})

	t.Run("delete returns record and removes it", func(t *testing.T) {
		e, err := repo.Create(ctx, sample("Lunch", at(12, 0)))
		if err != nil {
			t.Fatal(err)
		}
		deleted, err := repo.Delete(ctx, e.ID)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if deleted.ID != e.ID {
			t.Errorf("deleted id = %s", deleted.ID)
		}
		if _, err := repo.GetByID(ctx, e.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("GetByID after delete: %v", err)
		}
		if _, err := repo.Delete(ctx, e.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("second Delete: %v", err)
		}
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, missingID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("missing id: %v", err)
		}
		if _, err := repo.Update(ctx, model.Event{ID: missingID, Title: "x", Start: at(1, 0), End: at(2, 0)}); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("update missing id: %v", err)
		}
		if _, err := repo.GetByID(ctx, malformedID); !errors.Is(err, repository.ErrInvalidID) {
			t.Errorf("malformed id: %v", err)
		}
		if _, err := repo.Delete(ctx, malformedID); !errors.Is(err, repository.ErrInvalidID) {
			t.Errorf("delete malformed id: %v", err)
		}
	})
}

func TestMemoryEventRepository(t *testing.T) {
	runContract(t, repository.NewMemoryEventRepository(),
		"7f1c0a52-31c5-4a8e-9d2f-5b7e8e0d1a11", "not-a-uuid")
}

func TestMemoryEventRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryEventRepository()
	e, err := repo.Create(ctx, sample("Original", at(9, 0)))
	if err != nil {
		t.Fatal(err)
	}
	e.Title = "mutated by caller"
	got, _ := repo.GetByID(ctx, e.ID)
	if got.Title != "Original" {
		t.Errorf("stored event aliased caller memory: %q", got.Title)
	}
}

func TestPostgresEventRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := database.NewPool(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE events`); err != nil {
		t.Fatal(err)
	}
	runContract(t, repository.NewPostgresEventRepository(pool),
		"7f1c0a52-31c5-4a8e-9d2f-5b7e8e0d1a11", "not-a-uuid")
}

func TestMongoEventRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}
	ctx := context.Background()
	client, err := database.NewMongo(ctx, uri)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("event_calendar_test")
	if err := db.Drop(ctx); err != nil {
		t.Fatal(err)
	}
	repo, err := repository.NewMongoEventRepository(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	runContract(t, repo, "65a1b2c3d4e5f60718293a4b", "not-an-objectid")
}

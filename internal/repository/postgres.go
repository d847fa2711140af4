package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/validate"
)

// pgCheckViolation is SQLSTATE check_violation.
const pgCheckViolation = "23514"

const eventColumns = `id::text, title, description, start_at, end_at, all_day, created_at, updated_at`

// PostgresEventRepository stores events in the events table.
// It uses pgx directly (no ORM).
type PostgresEventRepository struct {
	db *pgxpool.Pool
}

// NewPostgresEventRepository constructs a PostgresEventRepository.
func NewPostgresEventRepository(db *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Start, &e.End, &e.AllDay, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Start, e.End = e.Start.UTC(), e.End.UTC()
	e.CreatedAt, e.UpdatedAt = e.CreatedAt.UTC(), e.UpdatedAt.UTC()
	return &e, nil
}

func parseUUID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}

// translate maps constraint violations onto the validation taxonomy.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		ve := &model.ValidationError{}
		if pgErr.ConstraintName == "events_end_after_start" {
			ve.Add("end", model.KindOrdering, "End date must be after start date")
		} else {
			ve.Add("event", model.KindInvalidFormat, pgErr.Message)
		}
		return ve
	}
	return fmt.Errorf("%s: %w", op, err)
}

// List returns all events ordered by start ascending.
func (r *PostgresEventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 ORDER BY start_at ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound.
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	e, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1::uuid`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// Create inserts a new event with a generated UUID.
func (r *PostgresEventRepository) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	if err := validate.Event(e); err != nil {
		return nil, err
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	e.ID = uuid.New().String()
	e.CreatedAt, e.UpdatedAt = now, now

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, description, start_at, end_at, all_day, created_at, updated_at)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, e.Description, e.Start.UTC(), e.End.UTC(), e.AllDay, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return nil, translate("insert event", err)
	}
	return &e, nil
}

// Update overwrites the mutable fields of an existing event.
func (r *PostgresEventRepository) Update(ctx context.Context, e model.Event) (*model.Event, error) {
	key, err := parseUUID(e.ID)
	if err != nil {
		return nil, err
	}
	if err := validate.Event(e); err != nil {
		return nil, err
	}
	updated, err := scanEvent(r.db.QueryRow(ctx,
		`UPDATE events
		 SET title = $2, description = $3, start_at = $4, end_at = $5, all_day = $6, updated_at = $7
		 WHERE id = $1::uuid
		 RETURNING `+eventColumns,
		key, e.Title, e.Description, e.Start.UTC(), e.End.UTC(), e.AllDay, time.Now().UTC().Truncate(time.Microsecond),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, translate("update event", err)
	}
	return updated, nil
}

// Delete removes an event and returns the deleted row.
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) (*model.Event, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	e, err := scanEvent(r.db.QueryRow(ctx,
		`DELETE FROM events WHERE id = $1::uuid RETURNING `+eventColumns, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return e, nil
}

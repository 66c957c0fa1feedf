package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meetgrid/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	dates, err := json.Marshal(e.Dates)
	if err != nil {
		return fmt.Errorf("encode dates: %w", err)
	}
	query := `
		INSERT INTO events (id, title, dates, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.DB.ExecContext(ctx, query, e.ID, e.Title, string(dates), e.Timezone, e.CreatedAt, e.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, dates, timezone, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var dates []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &dates, &e.Timezone, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(dates, &e.Dates); err != nil {
		return nil, fmt.Errorf("decode dates of event %s: %w", id, err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	dates, err := json.Marshal(e.Dates)
	if err != nil {
		return fmt.Errorf("encode dates: %w", err)
	}
	query := `
		UPDATE events
		SET title = $2, dates = $3, timezone = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, e.ID, e.Title, string(dates), e.Timezone, e.UpdatedAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEndedBefore compares against the latest range end; ranges are stored
// newest first, so the last array element is not the one that ends last.
func (r *eventRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM events e
		WHERE (
			SELECT MAX((d->>'end')::timestamptz)
			FROM jsonb_array_elements(e.dates) AS d
		) <= $1
	`
	result, err := r.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meetgrid/internal/domain"

	"github.com/lib/pq"
)

type availabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) domain.AvailabilityRepository {
	return &availabilityRepository{
		DB: db,
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertIntervals writes all intervals in one statement by unnesting parallel arrays.
func insertIntervals(ctx context.Context, db execer, intervals []*domain.Interval) error {
	if len(intervals) == 0 {
		return nil
	}
	ids := make([]string, len(intervals))
	responseIDs := make([]string, len(intervals))
	starts := make([]string, len(intervals))
	ends := make([]string, len(intervals))
	kinds := make([]string, len(intervals))
	for i, iv := range intervals {
		ids[i] = iv.ID
		responseIDs[i] = iv.ResponseID
		starts[i] = iv.Start.UTC().Format(time.RFC3339Nano)
		ends[i] = iv.End.UTC().Format(time.RFC3339Nano)
		kinds[i] = string(iv.Kind)
	}
	query := `
		INSERT INTO availabilities (id, response_id, start_time, end_time, kind)
		SELECT * FROM unnest($1::text[], $2::text[], $3::timestamptz[], $4::timestamptz[], $5::text[])
	`
	_, err := db.ExecContext(ctx, query,
		pq.Array(ids), pq.Array(responseIDs), pq.Array(starts), pq.Array(ends), pq.Array(kinds))
	return err
}

func (r *availabilityRepository) CreateMany(ctx context.Context, intervals []*domain.Interval) error {
	return insertIntervals(ctx, r.DB, intervals)
}

func (r *availabilityRepository) Replace(ctx context.Context, responseID string, intervals []*domain.Interval) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM availabilities WHERE response_id = $1`, responseID); err != nil {
		return fmt.Errorf("clear availability: %w", err)
	}
	if err := insertIntervals(ctx, tx, intervals); err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return tx.Commit()
}

func (r *availabilityRepository) ListByResponseID(ctx context.Context, responseID string) ([]*domain.Interval, error) {
	query := `
		SELECT id, response_id, start_time, end_time, kind
		FROM availabilities
		WHERE response_id = $1
		ORDER BY start_time, id
	`
	return r.list(ctx, query, responseID)
}

func (r *availabilityRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Interval, error) {
	query := `
		SELECT a.id, a.response_id, a.start_time, a.end_time, a.kind
		FROM availabilities a
		INNER JOIN responses r ON r.id = a.response_id
		WHERE r.event_id = $1
		ORDER BY r.created_at, r.id, a.start_time, a.id
	`
	return r.list(ctx, query, eventID)
}

func (r *availabilityRepository) list(ctx context.Context, query string, arg string) ([]*domain.Interval, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	intervals := make([]*domain.Interval, 0)
	for rows.Next() {
		iv := &domain.Interval{}
		var kind string
		if err := rows.Scan(&iv.ID, &iv.ResponseID, &iv.Start, &iv.End, &kind); err != nil {
			return nil, err
		}
		iv.Kind = domain.AvailabilityKind(kind)
		iv.Start, iv.End = iv.Start.UTC(), iv.End.UTC()
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

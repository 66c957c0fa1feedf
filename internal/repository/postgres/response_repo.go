package postgres

import (
	"context"
	"database/sql"
	"errors"

	"meetgrid/internal/domain"
)

type responseRepository struct {
	DB *sql.DB
}

func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{
		DB: db,
	}
}

const responseColumns = `id, event_id, name, email, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResponse(s scanner) (*domain.Response, error) {
	resp := &domain.Response{}
	var email sql.NullString
	if err := s.Scan(&resp.ID, &resp.EventID, &resp.Name, &email, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		resp.Email = &email.String
	}
	return resp, nil
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	query := `
		INSERT INTO responses (id, event_id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, resp.ID, resp.EventID, resp.Name, resp.Email, resp.CreatedAt, resp.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE id = $1`
	resp, err := scanResponse(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (r *responseRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE event_id = $1 ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	responses := make([]*domain.Response, 0)
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *responseRepository) Update(ctx context.Context, resp *domain.Response) error {
	query := `
		UPDATE responses
		SET name = $2, email = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, resp.ID, resp.Name, resp.Email, resp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *responseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM responses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

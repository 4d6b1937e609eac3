package repository

import (
	"context"
	"errors"

	"gifting_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StreamRepository struct {
	db *pgxpool.Pool
}

func NewStreamRepository(db *pgxpool.Pool) *StreamRepository {
	return &StreamRepository{db: db}
}

// GetByID returns a stream, or ErrNotFound.
func (r *StreamRepository) GetByID(ctx context.Context, id int64) (*domain.Stream, error) {
	var s domain.Stream
	err := r.db.QueryRow(ctx,
		`SELECT id, host_user_id, title, live, started_at, ended_at
		 FROM streams WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.HostUserID, &s.Title, &s.Live, &s.StartedAt, &s.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a stream row exists.
func (r *StreamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM streams WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

package repository

import (
	"context"
	"errors"

	"gifting_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressRepository mutates user XP/level and guards level rewards and
// badges against double grants.
type ProgressRepository struct {
	db *pgxpool.Pool
}

func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// AddXPTx increments a user's XP and returns the updated progress.
func (r *ProgressRepository) AddXPTx(ctx context.Context, tx pgx.Tx, userID, xp int64) (*domain.UserProgress, error) {
	var p domain.UserProgress
	p.UserID = userID
	err := tx.QueryRow(ctx,
		`UPDATE users SET xp = xp + $1 WHERE id = $2 RETURNING xp, level`,
		xp, userID,
	).Scan(&p.XP, &p.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SetLevelTx persists a newly reached level.
func (r *ProgressRepository) SetLevelTx(ctx context.Context, tx pgx.Tx, userID int64, level int) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET level = $1 WHERE id = $2`, level, userID)
	return err
}

// ClaimLevelRewardTx records that the reward for (user, level) has been
// granted. Returns false without error when it was already claimed, so
// concurrent duplicate level checks apply a reward at most once.
func (r *ProgressRepository) ClaimLevelRewardTx(ctx context.Context, tx pgx.Tx, userID int64, level int) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO level_reward_claims (user_id, level)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, level) DO NOTHING`,
		userID, level,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GrantBadgeTx grants a badge once per user, tagged with the originating
// gift transaction. Returns false when the user already holds the badge.
func (r *ProgressRepository) GrantBadgeTx(ctx context.Context, tx pgx.Tx, userID int64, badge string, giftTxID int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO user_badges (user_id, badge, gift_tx_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, badge) DO NOTHING`,
		userID, badge, giftTxID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetProgress returns a user's XP and persisted level.
func (r *ProgressRepository) GetProgress(ctx context.Context, userID int64) (*domain.UserProgress, error) {
	var p domain.UserProgress
	p.UserID = userID
	err := r.db.QueryRow(ctx,
		`SELECT xp, level FROM users WHERE id = $1`, userID,
	).Scan(&p.XP, &p.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetBadges returns badge codes held by a user.
func (r *ProgressRepository) GetBadges(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT badge FROM user_badges WHERE user_id = $1 ORDER BY granted_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

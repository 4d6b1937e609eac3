package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const CommissionCounter = "gift_commission"

// CommissionRepository maintains named accumulator counters. The increment
// is a single UPDATE inside the gift transaction, so concurrent sends
// serialize on the row and no update is lost. The total stays
// reconstructable by re-summing gift_transactions.
type CommissionRepository struct {
	db *pgxpool.Pool
}

func NewCommissionRepository(db *pgxpool.Pool) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// AddTx adds minor units to a named counter within an existing transaction,
// creating the counter row on first use.
func (r *CommissionRepository) AddTx(ctx context.Context, tx pgx.Tx, name string, minorUnits int64) error {
	if minorUnits < 0 {
		return ErrInvalidAmount
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO counters (name, total_minor_units)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE
		 SET total_minor_units = counters.total_minor_units + EXCLUDED.total_minor_units`,
		name, minorUnits,
	)
	return err
}

// Total returns the accumulated minor units for a counter; a counter that
// was never written reads as zero.
func (r *CommissionRepository) Total(ctx context.Context, name string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT total_minor_units FROM counters WHERE name = $1`, name,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}

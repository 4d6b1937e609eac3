package repository

import (
	"context"
	"errors"

	"gifting_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// BalanceRepository mutates per-user coin/diamond balances. All mutations
// run inside a caller-provided transaction so a gift send stays atomic.
type BalanceRepository struct {
	db *pgxpool.Pool
}

func NewBalanceRepository(db *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// column maps a currency to its users column. Currencies outside the map
// never reach SQL.
func column(currency domain.Currency) (string, bool) {
	switch currency {
	case domain.CurrencyCoins:
		return "coins", true
	case domain.CurrencyDiamonds:
		return "diamonds", true
	}
	return "", false
}

// LockUsers acquires row locks on the given user ids in ascending order to
// avoid deadlocks between concurrent gift sends.
func (r *BalanceRepository) LockUsers(ctx context.Context, tx pgx.Tx, ids ...int64) error {
	ordered := append([]int64(nil), ids...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j] < ordered[j-1]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	for _, id := range ordered {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// DebitTx decrements a balance, failing with ErrInsufficientFunds when the
// result would go negative. The conditional UPDATE enforces the non-negative
// invariant at the database, not just in application code.
func (r *BalanceRepository) DebitTx(ctx context.Context, tx pgx.Tx, userID int64, currency domain.Currency, amount int64) (newBalance int64, err error) {
	col, ok := column(currency)
	if !ok || amount <= 0 {
		return 0, ErrInvalidAmount
	}

	err = tx.QueryRow(ctx,
		`UPDATE users SET `+col+` = `+col+` - $1
		 WHERE id = $2 AND `+col+` >= $1
		 RETURNING `+col,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrNotFound
			}
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}
	return newBalance, nil
}

// CreditTx increments a balance. Non-positive amounts fail with
// ErrInvalidAmount.
func (r *BalanceRepository) CreditTx(ctx context.Context, tx pgx.Tx, userID int64, currency domain.Currency, amount int64) (newBalance int64, err error) {
	col, ok := column(currency)
	if !ok || amount <= 0 {
		return 0, ErrInvalidAmount
	}

	err = tx.QueryRow(ctx,
		`UPDATE users SET `+col+` = `+col+` + $1 WHERE id = $2 RETURNING `+col,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return newBalance, nil
}

// Get returns both balances for a user.
func (r *BalanceRepository) Get(ctx context.Context, userID int64) (coins, diamonds int64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT coins, diamonds FROM users WHERE id = $1`, userID,
	).Scan(&coins, &diamonds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return coins, diamonds, nil
}

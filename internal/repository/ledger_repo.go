package repository

import (
	"context"
	"encoding/json"
	"time"

	"gifting_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository records individual balance mutations, including the
// synthetic reward and bonus entries attached to a gift transaction.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateTx inserts a ledger entry within an existing transaction.
func (r *LedgerRepository) CreateTx(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	metaJSON, err := json.Marshal(e.Meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (user_id, type, currency, amount, gift_tx_id, meta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.UserID, e.Type, e.Currency, e.Amount, e.GiftTxID, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByUserID returns recent entries for a user, newest first.
func (r *LedgerRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, currency, amount, gift_tx_id, meta, created_at
		 FROM ledger_entries
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LedgerEntry
	for rows.Next() {
		var (
			e         domain.LedgerEntry
			metaJSON  []byte
			createdAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Currency, &e.Amount, &e.GiftTxID, &metaJSON, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &e.Meta)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

package repository

import (
	"context"
	"errors"

	"gifting_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateKey = errors.New("duplicate idempotency key")

// GiftTxRepository is the append-only gift transaction table. Rows are
// written once inside the atomic unit and never updated.
type GiftTxRepository struct {
	db *pgxpool.Pool
}

func NewGiftTxRepository(db *pgxpool.Pool) *GiftTxRepository {
	return &GiftTxRepository{db: db}
}

const giftTxColumns = `id, sender_id, receiver_id, stream_id, gift_code, unit_value_coins,
	quantity, total_coins, message, anonymous, public, rate, commission_rate,
	commission_minor_units, receiver_diamonds, xp_awarded, idempotency_key, created_at`

// CreateTx inserts the immutable transaction record within the atomic unit.
// Reusing an idempotency key fails with ErrDuplicateKey.
func (r *GiftTxRepository) CreateTx(ctx context.Context, tx pgx.Tx, gt *domain.GiftTransaction) error {
	var key *string
	if gt.IdempotencyKey != "" {
		key = &gt.IdempotencyKey
	}

	err := tx.QueryRow(ctx,
		`INSERT INTO gift_transactions
			(sender_id, receiver_id, stream_id, gift_code, unit_value_coins, quantity,
			 total_coins, message, anonymous, public, rate, commission_rate,
			 commission_minor_units, receiver_diamonds, xp_awarded, idempotency_key)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		 RETURNING id, created_at`,
		gt.SenderID, gt.ReceiverID, gt.StreamID, gt.GiftCode, gt.UnitValueCoins, gt.Quantity,
		gt.TotalCoins, gt.Message, gt.Anonymous, gt.Public, gt.Economy.Rate, gt.Economy.CommissionRate,
		gt.CommissionMinorUnits, gt.ReceiverDiamonds, gt.XPAwarded, key,
	).Scan(&gt.ID, &gt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetByIdempotencyKey returns the committed transaction for a key, or
// ErrNotFound.
func (r *GiftTxRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.GiftTransaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+giftTxColumns+` FROM gift_transactions WHERE idempotency_key = $1`, key)
	return scanGiftTx(row)
}

// GetByID returns one transaction.
func (r *GiftTxRepository) GetByID(ctx context.Context, id int64) (*domain.GiftTransaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+giftTxColumns+` FROM gift_transactions WHERE id = $1`, id)
	return scanGiftTx(row)
}

// GetByReceiver returns recent public gifts for a receiver, newest first.
func (r *GiftTxRepository) GetByReceiver(ctx context.Context, receiverID int64, limit int) ([]*domain.GiftTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+giftTxColumns+`
		 FROM gift_transactions
		 WHERE receiver_id = $1 AND public = true
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		receiverID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.GiftTransaction
	for rows.Next() {
		gt, err := scanGiftTx(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, gt)
	}
	return result, rows.Err()
}

func scanGiftTx(row pgx.Row) (*domain.GiftTransaction, error) {
	var (
		gt  domain.GiftTransaction
		key *string
	)
	err := row.Scan(
		&gt.ID, &gt.SenderID, &gt.ReceiverID, &gt.StreamID, &gt.GiftCode, &gt.UnitValueCoins,
		&gt.Quantity, &gt.TotalCoins, &gt.Message, &gt.Anonymous, &gt.Public,
		&gt.Economy.Rate, &gt.Economy.CommissionRate,
		&gt.CommissionMinorUnits, &gt.ReceiverDiamonds, &gt.XPAwarded, &key, &gt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if key != nil {
		gt.IdempotencyKey = *key
	}
	return &gt, nil
}

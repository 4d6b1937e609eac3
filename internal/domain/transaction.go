package domain

import "time"

// Currency names a balance column. Coins are spent by senders, diamonds
// are earned by receivers; they are never directly fungible.
type Currency string

const (
	CurrencyCoins    Currency = "coins"
	CurrencyDiamonds Currency = "diamonds"
)

// Ledger entry types.
const (
	EntryGiftOut     = "gift_out"
	EntryGiftIn      = "gift_in"
	EntryLevelReward = "level_reward"
	EntryGiftBonus   = "gift_bonus"
	EntrySeed        = "seed"
)

// LedgerEntry records a single balance mutation. Synthetic entries
// (level rewards, gift bonuses) carry the originating gift transaction id.
type LedgerEntry struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Currency  Currency               `db:"currency" json:"currency"`
	Amount    int64                  `db:"amount" json:"amount"`
	GiftTxID  *int64                 `db:"gift_tx_id" json:"gift_tx_id,omitempty"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

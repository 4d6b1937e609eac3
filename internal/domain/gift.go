package domain

import "time"

// GiftDefinition describes a purchasable gift: its economic value, XP yield
// and optional bonus grants. Built-in definitions can be overridden
// field-by-field by the admin catalog blob.
type GiftDefinition struct {
	Code           string `json:"code"`
	DisplayName    string `json:"display_name"`
	Icon           string `json:"icon"`
	BaseValueCoins int64  `json:"base_value_coins"`
	Animation      string `json:"animation,omitempty"`
	XPPerUnit      int64  `json:"xp_per_unit,omitempty"`
	BonusDiamonds  int64  `json:"bonus_diamonds,omitempty"`
	BonusCoins     int64  `json:"bonus_coins,omitempty"`
	Badge          string `json:"badge,omitempty"`
}

// GiftOverride is a partial GiftDefinition from the admin catalog blob.
// Nil fields keep the built-in value.
type GiftOverride struct {
	DisplayName    *string `json:"display_name,omitempty"`
	Icon           *string `json:"icon,omitempty"`
	BaseValueCoins *int64  `json:"base_value_coins,omitempty"`
	Animation      *string `json:"animation,omitempty"`
	XPPerUnit      *int64  `json:"xp_per_unit,omitempty"`
	BonusDiamonds  *int64  `json:"bonus_diamonds,omitempty"`
	BonusCoins     *int64  `json:"bonus_coins,omitempty"`
	Badge          *string `json:"badge,omitempty"`
}

// EconomySettings controls the coin -> minor-unit conversion and the
// platform commission share. Stored under settings key "gift_economy".
type EconomySettings struct {
	CoinToMinorUnitRate int64   `json:"coin_to_minor_unit_rate"`
	CommissionRate      float64 `json:"commission_rate"`
}

// EconomySnapshot is the economy state embedded into every committed
// gift transaction for auditability.
type EconomySnapshot struct {
	Rate           int64   `json:"rate"`
	CommissionRate float64 `json:"commission_rate"`
}

// GiftTransaction is the immutable record of one committed gift send.
type GiftTransaction struct {
	ID                   int64           `db:"id" json:"id"`
	SenderID             int64           `db:"sender_id" json:"sender_id"`
	ReceiverID           int64           `db:"receiver_id" json:"receiver_id"`
	StreamID             *int64          `db:"stream_id" json:"stream_id,omitempty"`
	GiftCode             string          `db:"gift_code" json:"gift_code"`
	UnitValueCoins       int64           `db:"unit_value_coins" json:"unit_value_coins"`
	Quantity             int64           `db:"quantity" json:"quantity"`
	TotalCoins           int64           `db:"total_coins" json:"total_coins"`
	Message              string          `db:"message" json:"message,omitempty"`
	Anonymous            bool            `db:"anonymous" json:"anonymous"`
	Public               bool            `db:"public" json:"public"`
	CommissionMinorUnits int64           `db:"commission_minor_units" json:"commission_minor_units"`
	ReceiverDiamonds     int64           `db:"receiver_diamonds" json:"receiver_diamonds"`
	XPAwarded            int64           `db:"xp_awarded" json:"xp_awarded"`
	Economy              EconomySnapshot `db:"economy" json:"applied_economy_snapshot"`
	IdempotencyKey       string          `db:"idempotency_key" json:"-"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
}

package domain

// LevelUpEvent is emitted after a gift send commits with a level increase.
type LevelUpEvent struct {
	UserID   int64  `json:"user_id"`
	Level    int    `json:"level"`
	Source   string `json:"source"`
	GiftCode string `json:"gift_code"`
	Quantity int64  `json:"quantity"`
}

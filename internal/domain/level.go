package domain

// LevelReward is granted when a user first reaches a level.
type LevelReward struct {
	Diamonds int64 `json:"diamonds"`
	Coins    int64 `json:"coins"`
}

// LevelSettings controls the XP growth curve. Stored under settings key
// "level_settings". LevelRewards is keyed by level number.
type LevelSettings struct {
	BaseXPRequired int64                `json:"base_xp_required"`
	XPMultiplier   float64              `json:"xp_multiplier"`
	MaxLevel       int                  `json:"max_level"`
	XPPerCoin      int64                `json:"xp_per_coin"`
	LevelRewards   map[int]*LevelReward `json:"level_rewards,omitempty"`
}

// UserProgress is a user's cumulative XP and derived level.
type UserProgress struct {
	UserID int64 `db:"user_id" json:"user_id"`
	XP     int64 `db:"xp" json:"xp"`
	Level  int   `db:"level" json:"level"`
}

// LevelInfo is the result of resolving an XP value against the current
// threshold table.
type LevelInfo struct {
	Level          int   `json:"level"`
	CurrentLevelXP int64 `json:"current_level_xp"`
	NextLevelXP    int64 `json:"next_level_xp"` // -1 at max level
	XPIntoLevel    int64 `json:"xp_into_level"`
}

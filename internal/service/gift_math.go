package service

import (
	"math"

	"gifting_platform/internal/domain"
)

// giftAmounts is everything the atomic unit needs to mutate balances.
// All monetary fields are integral minor units; the only floating-point
// step is the commission split, floored in the platform's favor so
// commission + receiver always equals the total exactly.
type giftAmounts struct {
	TotalCoins           int64
	TotalMinorUnits      int64
	CommissionMinorUnits int64
	ReceiverMinorUnits   int64
	ReceiverDiamonds     int64
	XPAward              int64
}

func computeAmounts(def domain.GiftDefinition, quantity int64, eco domain.EconomySettings, lv domain.LevelSettings) giftAmounts {
	totalCoins := def.BaseValueCoins * quantity
	totalMinor := totalCoins * eco.CoinToMinorUnitRate
	commission := int64(math.Floor(float64(totalMinor) * eco.CommissionRate))
	receiverMinor := totalMinor - commission

	xpPerUnit := def.XPPerUnit
	if xpPerUnit <= 0 {
		xpPerUnit = def.BaseValueCoins * lv.XPPerCoin
	}

	return giftAmounts{
		TotalCoins:           totalCoins,
		TotalMinorUnits:      totalMinor,
		CommissionMinorUnits: commission,
		ReceiverMinorUnits:   receiverMinor,
		ReceiverDiamonds:     receiverMinor, // diamonds are denominated in minor units
		XPAward:              xpPerUnit * quantity,
	}
}

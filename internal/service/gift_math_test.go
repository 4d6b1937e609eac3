package service

import (
	"testing"

	"gifting_platform/internal/domain"
)

func TestComputeAmountsRoseScenario(t *testing.T) {
	eco := domain.EconomySettings{CoinToMinorUnitRate: 100, CommissionRate: 0.2}
	lv := domain.LevelSettings{XPPerCoin: 1}
	rose := domain.GiftDefinition{Code: "rose", BaseValueCoins: 1, XPPerUnit: 1}

	got := computeAmounts(rose, 5, eco, lv)

	if got.TotalCoins != 5 {
		t.Fatalf("total coins = %d; want 5", got.TotalCoins)
	}
	if got.TotalMinorUnits != 500 {
		t.Fatalf("total minor units = %d; want 500", got.TotalMinorUnits)
	}
	if got.CommissionMinorUnits != 100 {
		t.Fatalf("commission = %d; want 100", got.CommissionMinorUnits)
	}
	if got.ReceiverDiamonds != 400 {
		t.Fatalf("receiver diamonds = %d; want 400", got.ReceiverDiamonds)
	}
	if got.XPAward != 5 {
		t.Fatalf("xp award = %d; want 5", got.XPAward)
	}
}

func TestComputeAmountsNoLeakage(t *testing.T) {
	lv := domain.LevelSettings{XPPerCoin: 1}
	rates := []int64{1, 7, 100, 250}
	commissions := []float64{0, 0.1, 0.2, 0.33, 0.5, 0.99, 1}
	values := []int64{1, 3, 50, 999}
	quantities := []int64{1, 2, 17, 500}

	for _, rate := range rates {
		for _, commission := range commissions {
			for _, value := range values {
				for _, qty := range quantities {
					eco := domain.EconomySettings{CoinToMinorUnitRate: rate, CommissionRate: commission}
					def := domain.GiftDefinition{BaseValueCoins: value}
					got := computeAmounts(def, qty, eco, lv)

					if got.TotalCoins != value*qty {
						t.Fatalf("total coins = %d; want %d", got.TotalCoins, value*qty)
					}
					if got.CommissionMinorUnits+got.ReceiverMinorUnits != got.TotalMinorUnits {
						t.Fatalf("currency leaked: rate=%d commission=%v value=%d qty=%d: %d + %d != %d",
							rate, commission, value, qty,
							got.CommissionMinorUnits, got.ReceiverMinorUnits, got.TotalMinorUnits)
					}
					if got.CommissionMinorUnits < 0 || got.ReceiverMinorUnits < 0 {
						t.Fatalf("negative split: %+v", got)
					}
				}
			}
		}
	}
}

func TestComputeAmountsXPFallback(t *testing.T) {
	eco := domain.EconomySettings{CoinToMinorUnitRate: 100, CommissionRate: 0.2}
	lv := domain.LevelSettings{XPPerCoin: 3}

	// no explicit xp_per_unit: xp comes from coin value times xp_per_coin
	def := domain.GiftDefinition{BaseValueCoins: 10}
	if got := computeAmounts(def, 2, eco, lv).XPAward; got != 60 {
		t.Fatalf("fallback xp award = %d; want 60", got)
	}

	// explicit xp_per_unit wins over the fallback
	def.XPPerUnit = 5
	if got := computeAmounts(def, 2, eco, lv).XPAward; got != 10 {
		t.Fatalf("explicit xp award = %d; want 10", got)
	}
}

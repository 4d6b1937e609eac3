package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	giftsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gifts_processed_total",
			Help: "Gift sends by outcome",
		},
		[]string{"outcome"},
	)
	giftCoinsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gift_coins_spent_total",
			Help: "Coins debited for committed gifts",
		},
	)
	commissionMinorUnits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gift_commission_minor_units_total",
			Help: "Commission accumulated by committed gifts, in minor units",
		},
	)
	levelUps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "level_ups_total",
			Help: "Level-ups triggered by gift sends",
		},
	)
)

func init() {
	prometheus.MustRegister(giftsProcessed)
	prometheus.MustRegister(giftCoinsSpent)
	prometheus.MustRegister(commissionMinorUnits)
	prometheus.MustRegister(levelUps)
}

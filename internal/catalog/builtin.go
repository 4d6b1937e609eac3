package catalog

import "gifting_platform/internal/domain"

// builtin is the shipped gift catalog. Admin overrides are merged on top
// field-by-field; codes not listed here must supply a full definition.
var builtin = map[string]domain.GiftDefinition{
	"rose": {
		Code:           "rose",
		DisplayName:    "Rose",
		Icon:           "🌹",
		BaseValueCoins: 1,
		Animation:      "float",
		XPPerUnit:      1,
	},
	"heart": {
		Code:           "heart",
		DisplayName:    "Heart",
		Icon:           "❤️",
		BaseValueCoins: 5,
		Animation:      "pulse",
		XPPerUnit:      5,
	},
	"confetti": {
		Code:           "confetti",
		DisplayName:    "Confetti",
		Icon:           "🎉",
		BaseValueCoins: 20,
		Animation:      "burst",
		XPPerUnit:      25,
	},
	"rocket": {
		Code:           "rocket",
		DisplayName:    "Rocket",
		Icon:           "🚀",
		BaseValueCoins: 100,
		Animation:      "launch",
		XPPerUnit:      150,
		BonusDiamonds:  50,
	},
	"crown": {
		Code:           "crown",
		DisplayName:    "Crown",
		Icon:           "👑",
		BaseValueCoins: 500,
		Animation:      "shine",
		XPPerUnit:      1000,
		BonusDiamonds:  500,
		Badge:          "royal_supporter",
	},
	"galaxy": {
		Code:           "galaxy",
		DisplayName:    "Galaxy",
		Icon:           "🌌",
		BaseValueCoins: 2000,
		Animation:      "swirl",
		XPPerUnit:      5000,
		BonusDiamonds:  2500,
		BonusCoins:     100,
		Badge:          "star_patron",
	},
}

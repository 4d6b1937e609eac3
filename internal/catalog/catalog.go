package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"gifting_platform/internal/domain"
	"gifting_platform/internal/logger"
	"gifting_platform/internal/settings"
)

var (
	ErrNotFound          = errors.New("gift not found")
	ErrInvalidDefinition = errors.New("invalid gift definition")
)

// Resolver merges built-in gift definitions with the admin override blob
// stored under the gift_catalog settings key.
type Resolver struct {
	src settings.Source
}

func NewResolver(src settings.Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve returns the effective definition for code. Override fields win
// over built-in defaults per field. An override with no built-in base must
// carry a positive base value or resolution fails with ErrInvalidDefinition.
func (r *Resolver) Resolve(ctx context.Context, code string) (domain.GiftDefinition, error) {
	overrides := r.loadOverrides(ctx)

	def, hasBuiltin := builtin[code]
	ov, hasOverride := overrides[code]

	if !hasBuiltin && !hasOverride {
		return domain.GiftDefinition{}, ErrNotFound
	}
	if !hasBuiltin {
		def = domain.GiftDefinition{Code: code}
	}
	if hasOverride {
		applyOverride(&def, ov)
	}

	if def.BaseValueCoins <= 0 {
		return domain.GiftDefinition{}, ErrInvalidDefinition
	}
	return def, nil
}

// List returns all effective definitions, built-ins merged with overrides,
// sorted by ascending value for display.
func (r *Resolver) List(ctx context.Context) []domain.GiftDefinition {
	overrides := r.loadOverrides(ctx)

	codes := make(map[string]struct{}, len(builtin)+len(overrides))
	for code := range builtin {
		codes[code] = struct{}{}
	}
	for code := range overrides {
		codes[code] = struct{}{}
	}

	var defs []domain.GiftDefinition
	for code := range codes {
		def, err := r.Resolve(ctx, code)
		if err != nil {
			continue
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool {
		if defs[i].BaseValueCoins != defs[j].BaseValueCoins {
			return defs[i].BaseValueCoins < defs[j].BaseValueCoins
		}
		return defs[i].Code < defs[j].Code
	})
	return defs
}

// loadOverrides parses the admin catalog blob. Invalid JSON yields an empty
// override set, never an error.
func (r *Resolver) loadOverrides(ctx context.Context) map[string]domain.GiftOverride {
	raw, err := r.src.Get(ctx, settings.KeyGiftCatalog)
	if err != nil {
		logger.Warn("catalog: override load failed, ignoring overrides", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var overrides map[string]domain.GiftOverride
	if err := json.Unmarshal(raw, &overrides); err != nil {
		logger.Warn("catalog: malformed gift_catalog blob, ignoring overrides", "error", err)
		return nil
	}
	return overrides
}

func applyOverride(def *domain.GiftDefinition, ov domain.GiftOverride) {
	if ov.DisplayName != nil {
		def.DisplayName = *ov.DisplayName
	}
	if ov.Icon != nil {
		def.Icon = *ov.Icon
	}
	if ov.BaseValueCoins != nil {
		def.BaseValueCoins = *ov.BaseValueCoins
	}
	if ov.Animation != nil {
		def.Animation = *ov.Animation
	}
	if ov.XPPerUnit != nil {
		def.XPPerUnit = *ov.XPPerUnit
	}
	if ov.BonusDiamonds != nil {
		def.BonusDiamonds = *ov.BonusDiamonds
	}
	if ov.BonusCoins != nil {
		def.BonusCoins = *ov.BonusCoins
	}
	if ov.Badge != nil {
		def.Badge = *ov.Badge
	}
}

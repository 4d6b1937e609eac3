package settings

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"gifting_platform/internal/domain"
	"gifting_platform/internal/logger"
)

// Settings store keys.
const (
	KeyGiftEconomy   = "gift_economy"
	KeyLevelSettings = "level_settings"
	KeyGiftCatalog   = "gift_catalog"
)

// MaxLevelCeiling bounds admin-supplied max_level. Far beyond any sane
// curve, and small enough that the threshold table stays cheap to build.
const MaxLevelCeiling = 1000

// Source reads a raw settings value by key. A missing key returns (nil, nil).
type Source interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// DefaultEconomy returns the hard-coded economy fallback used when the
// stored value is absent or unparseable.
func DefaultEconomy() domain.EconomySettings {
	return domain.EconomySettings{
		CoinToMinorUnitRate: 100,
		CommissionRate:      0.2,
	}
}

// DefaultLevels returns the hard-coded level curve fallback.
func DefaultLevels() domain.LevelSettings {
	return domain.LevelSettings{
		BaseXPRequired: 100,
		XPMultiplier:   1.1,
		MaxLevel:       100,
		XPPerCoin:      1,
	}
}

// Provider caches typed settings snapshots. Readers get immutable copies;
// Reload swaps in freshly loaded snapshots after an external settings write.
type Provider struct {
	src     Source
	economy atomic.Pointer[domain.EconomySettings]
	levels  atomic.Pointer[domain.LevelSettings]
}

func NewProvider(src Source) *Provider {
	return &Provider{src: src}
}

// Economy returns the cached economy settings, loading them on first use.
func (p *Provider) Economy(ctx context.Context) domain.EconomySettings {
	if s := p.economy.Load(); s != nil {
		return *s
	}
	s := p.loadEconomy(ctx)
	p.economy.Store(&s)
	return s
}

// Levels returns the cached level settings, loading them on first use.
func (p *Provider) Levels(ctx context.Context) domain.LevelSettings {
	if s := p.levels.Load(); s != nil {
		return *s
	}
	s := p.loadLevels(ctx)
	p.levels.Store(&s)
	return s
}

// Reload refetches both snapshots. Call after any settings write.
func (p *Provider) Reload(ctx context.Context) {
	e := p.loadEconomy(ctx)
	l := p.loadLevels(ctx)
	p.economy.Store(&e)
	p.levels.Store(&l)
}

func (p *Provider) loadEconomy(ctx context.Context) domain.EconomySettings {
	raw, err := p.src.Get(ctx, KeyGiftEconomy)
	if err != nil {
		logger.Warn("settings: economy load failed, using defaults", "error", err)
		return DefaultEconomy()
	}
	return ParseEconomy(raw)
}

func (p *Provider) loadLevels(ctx context.Context) domain.LevelSettings {
	raw, err := p.src.Get(ctx, KeyLevelSettings)
	if err != nil {
		logger.Warn("settings: levels load failed, using defaults", "error", err)
		return DefaultLevels()
	}
	return ParseLevels(raw)
}

// ParseEconomy decodes an economy settings blob. Absent or malformed input
// falls back to defaults; out-of-range fields are replaced individually.
func ParseEconomy(raw []byte) domain.EconomySettings {
	def := DefaultEconomy()
	if len(raw) == 0 {
		return def
	}

	var s domain.EconomySettings
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.Warn("settings: malformed gift_economy, using defaults", "error", err)
		return def
	}

	if s.CoinToMinorUnitRate <= 0 {
		s.CoinToMinorUnitRate = def.CoinToMinorUnitRate
	}
	if s.CommissionRate < 0 || s.CommissionRate > 1 {
		s.CommissionRate = def.CommissionRate
	}
	return s
}

// ParseLevels decodes a level settings blob with the same tolerance policy.
func ParseLevels(raw []byte) domain.LevelSettings {
	def := DefaultLevels()
	if len(raw) == 0 {
		return def
	}

	var s domain.LevelSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.Warn("settings: malformed level_settings, using defaults", "error", err)
		return def
	}

	if s.BaseXPRequired <= 0 {
		s.BaseXPRequired = def.BaseXPRequired
	}
	if s.XPMultiplier <= 1 {
		s.XPMultiplier = def.XPMultiplier
	}
	if s.MaxLevel <= 1 || s.MaxLevel > MaxLevelCeiling {
		s.MaxLevel = def.MaxLevel
	}
	if s.XPPerCoin <= 0 {
		s.XPPerCoin = def.XPPerCoin
	}
	return s
}

package levels

import (
	"context"
	"math"
	"sort"
	"sync/atomic"

	"gifting_platform/internal/domain"
	"gifting_platform/internal/settings"
)

// Table is an immutable cumulative-XP threshold table. Thresholds[l] is the
// total XP required to reach level l; index 0 is unused.
type Table struct {
	Thresholds []int64
	MaxLevel   int
}

// Build computes the threshold table for the given settings. The per-level
// requirement is floored when added, but the multiplier compounds on the
// running unrounded requirement so the growth curve is not distorted by
// accumulated rounding. Once the cumulative requirement no longer fits in
// int64 the remaining levels saturate at MaxInt64, keeping the table ordered
// for binary search; those levels are simply unreachable.
func Build(s domain.LevelSettings) *Table {
	thresholds := make([]int64, s.MaxLevel+1)
	required := float64(s.BaseXPRequired)
	for l := 2; l <= s.MaxLevel; l++ {
		if required >= math.MaxInt64 {
			saturate(thresholds, l)
			break
		}
		delta := int64(math.Floor(required))
		if delta > math.MaxInt64-thresholds[l-1] {
			saturate(thresholds, l)
			break
		}
		thresholds[l] = thresholds[l-1] + delta
		required *= s.XPMultiplier
	}
	return &Table{Thresholds: thresholds, MaxLevel: s.MaxLevel}
}

func saturate(thresholds []int64, from int) {
	for l := from; l < len(thresholds); l++ {
		thresholds[l] = math.MaxInt64
	}
}

// LevelFor returns the highest level whose threshold is <= xp, clamped to
// [1, MaxLevel]. Thresholds are monotonic, so binary search applies.
func (t *Table) LevelFor(xp int64) domain.LevelInfo {
	if xp < 0 {
		xp = 0
	}

	// smallest l in [2..max] with thresholds[l] > xp; level is l-1
	level := sort.Search(t.MaxLevel-1, func(i int) bool {
		return t.Thresholds[i+2] > xp
	}) + 1

	info := domain.LevelInfo{
		Level:          level,
		CurrentLevelXP: t.Thresholds[level],
		NextLevelXP:    -1,
		XPIntoLevel:    xp - t.Thresholds[level],
	}
	if level < t.MaxLevel {
		info.NextLevelXP = t.Thresholds[level+1]
	}
	return info
}

// Engine caches the current table and rebuilds it from settings on demand.
// A rebuild publishes a new immutable table; readers never observe a
// half-built one.
type Engine struct {
	provider *settings.Provider
	table    atomic.Pointer[Table]
}

func NewEngine(provider *settings.Provider) *Engine {
	return &Engine{provider: provider}
}

// Table returns the current threshold table, building it on first use.
func (e *Engine) Table(ctx context.Context) *Table {
	if t := e.table.Load(); t != nil {
		return t
	}
	t := Build(e.provider.Levels(ctx))
	e.table.Store(t)
	return t
}

// Reload rebuilds the table from freshly loaded settings. Call after any
// level_settings write.
func (e *Engine) Reload(ctx context.Context) {
	e.provider.Reload(ctx)
	e.table.Store(Build(e.provider.Levels(ctx)))
}

// LevelFor resolves xp against the current table.
func (e *Engine) LevelFor(ctx context.Context, xp int64) domain.LevelInfo {
	return e.Table(ctx).LevelFor(xp)
}

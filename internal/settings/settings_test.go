package settings

import (
	"context"
	"errors"
	"testing"
)

// stubSource serves canned blobs per key.
type stubSource struct {
	values map[string][]byte
	err    error
}

func (s *stubSource) Get(_ context.Context, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.values[key], nil
}

func TestParseEconomy(t *testing.T) {
	cases := []struct {
		name           string
		raw            string
		wantRate       int64
		wantCommission float64
	}{
		{"valid", `{"coin_to_minor_unit_rate":250,"commission_rate":0.3}`, 250, 0.3},
		{"malformed json", `{"coin_to_minor`, 100, 0.2},
		{"empty", ``, 100, 0.2},
		{"negative rate replaced", `{"coin_to_minor_unit_rate":-5,"commission_rate":0.5}`, 100, 0.5},
		{"commission out of range replaced", `{"coin_to_minor_unit_rate":10,"commission_rate":1.5}`, 10, 0.2},
	}

	for _, tc := range cases {
		got := ParseEconomy([]byte(tc.raw))
		if got.CoinToMinorUnitRate != tc.wantRate || got.CommissionRate != tc.wantCommission {
			t.Fatalf("%s: got rate=%d commission=%v; want rate=%d commission=%v",
				tc.name, got.CoinToMinorUnitRate, got.CommissionRate, tc.wantRate, tc.wantCommission)
		}
	}
}

func TestParseLevels(t *testing.T) {
	got := ParseLevels([]byte(`{"base_xp_required":200,"xp_multiplier":1.5,"max_level":10,"xp_per_coin":2,"level_rewards":{"5":{"diamonds":100}}}`))
	if got.BaseXPRequired != 200 || got.XPMultiplier != 1.5 || got.MaxLevel != 10 || got.XPPerCoin != 2 {
		t.Fatalf("unexpected parse result: %+v", got)
	}
	if r := got.LevelRewards[5]; r == nil || r.Diamonds != 100 {
		t.Fatalf("level reward for 5 = %+v; want diamonds=100", got.LevelRewards[5])
	}

	def := ParseLevels([]byte(`not json at all`))
	if def.BaseXPRequired != 100 || def.XPMultiplier != 1.1 || def.MaxLevel != 100 {
		t.Fatalf("malformed blob did not fall back to defaults: %+v", def)
	}

	// individual out-of-range fields are replaced, valid ones kept
	partial := ParseLevels([]byte(`{"base_xp_required":0,"xp_multiplier":2.0,"max_level":1}`))
	if partial.BaseXPRequired != 100 || partial.XPMultiplier != 2.0 || partial.MaxLevel != 100 {
		t.Fatalf("partial validation wrong: %+v", partial)
	}

	// max_level beyond the ceiling is rejected like any other bad value
	huge := ParseLevels([]byte(`{"base_xp_required":100,"xp_multiplier":1.1,"max_level":100000}`))
	if huge.MaxLevel != 100 {
		t.Fatalf("max_level over ceiling kept: %+v", huge)
	}
	atCeiling := ParseLevels([]byte(`{"base_xp_required":100,"xp_multiplier":1.1,"max_level":1000}`))
	if atCeiling.MaxLevel != MaxLevelCeiling {
		t.Fatalf("max_level at ceiling rejected: %+v", atCeiling)
	}
}

func TestProviderCachesUntilReload(t *testing.T) {
	src := &stubSource{values: map[string][]byte{
		KeyGiftEconomy: []byte(`{"coin_to_minor_unit_rate":100,"commission_rate":0.2}`),
	}}
	p := NewProvider(src)
	ctx := context.Background()

	if got := p.Economy(ctx).CoinToMinorUnitRate; got != 100 {
		t.Fatalf("initial rate = %d; want 100", got)
	}

	// the store changes, but the cached snapshot must stay stable
	src.values[KeyGiftEconomy] = []byte(`{"coin_to_minor_unit_rate":500,"commission_rate":0.1}`)
	if got := p.Economy(ctx).CoinToMinorUnitRate; got != 100 {
		t.Fatalf("cached rate = %d; want 100", got)
	}

	p.Reload(ctx)
	if got := p.Economy(ctx).CoinToMinorUnitRate; got != 500 {
		t.Fatalf("reloaded rate = %d; want 500", got)
	}
}

func TestProviderStoreErrorFallsBackToDefaults(t *testing.T) {
	p := NewProvider(&stubSource{err: errors.New("store down")})

	eco := p.Economy(context.Background())
	if eco != DefaultEconomy() {
		t.Fatalf("economy = %+v; want defaults", eco)
	}
	lv := p.Levels(context.Background())
	if lv.BaseXPRequired != DefaultLevels().BaseXPRequired {
		t.Fatalf("levels = %+v; want defaults", lv)
	}
}

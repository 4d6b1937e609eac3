package levels

import (
	"math"
	"testing"

	"gifting_platform/internal/domain"
)

func TestBuildThresholds(t *testing.T) {
	s := domain.LevelSettings{BaseXPRequired: 100, XPMultiplier: 1.1, MaxLevel: 5}
	table := Build(s)

	want := []int64{0, 0, 100, 210, 331, 464}
	if len(table.Thresholds) != len(want) {
		t.Fatalf("thresholds length = %d; want %d", len(table.Thresholds), len(want))
	}
	for l, w := range want {
		if table.Thresholds[l] != w {
			t.Fatalf("thresholds[%d] = %d; want %d", l, table.Thresholds[l], w)
		}
	}
}

func TestBuildThresholdsStrictlyIncreasing(t *testing.T) {
	s := domain.LevelSettings{BaseXPRequired: 1, XPMultiplier: 1.01, MaxLevel: 200}
	table := Build(s)

	for l := 2; l <= s.MaxLevel; l++ {
		if table.Thresholds[l] <= table.Thresholds[l-1] {
			t.Fatalf("thresholds not strictly increasing at level %d: %d <= %d",
				l, table.Thresholds[l], table.Thresholds[l-1])
		}
	}
}

func TestBuildThresholdsSaturateInsteadOfOverflow(t *testing.T) {
	// at 1.1x growth the cumulative requirement leaves int64 near level 420;
	// the tail must saturate, never wrap negative
	s := domain.LevelSettings{BaseXPRequired: 100, XPMultiplier: 1.1, MaxLevel: 600}
	table := Build(s)

	for l := 1; l <= s.MaxLevel; l++ {
		if table.Thresholds[l] < 0 {
			t.Fatalf("thresholds[%d] = %d; negative after overflow", l, table.Thresholds[l])
		}
		if l > 1 && table.Thresholds[l] < table.Thresholds[l-1] {
			t.Fatalf("thresholds not monotonic at level %d: %d < %d",
				l, table.Thresholds[l], table.Thresholds[l-1])
		}
	}
	if table.Thresholds[s.MaxLevel] != math.MaxInt64 {
		t.Fatalf("tail not saturated: thresholds[%d] = %d", s.MaxLevel, table.Thresholds[s.MaxLevel])
	}

	// lookups against the saturated table stay ordered and idempotent
	prev := 0
	for _, xp := range []int64{0, 1e6, 1e12, 1e18, math.MaxInt64} {
		level := table.LevelFor(xp).Level
		if level < prev {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev, level, xp)
		}
		if again := table.LevelFor(xp).Level; again != level {
			t.Fatalf("LevelFor(%d) not idempotent: %d then %d", xp, level, again)
		}
		prev = level
	}
}

func TestLevelFor(t *testing.T) {
	table := Build(domain.LevelSettings{BaseXPRequired: 100, XPMultiplier: 1.1, MaxLevel: 5})

	cases := []struct {
		xp   int64
		want int
	}{
		{-5, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{209, 2},
		{210, 3},
		{250, 3},
		{331, 4},
		{464, 5},
		{1000000, 5},
	}

	for _, tc := range cases {
		if got := table.LevelFor(tc.xp).Level; got != tc.want {
			t.Fatalf("LevelFor(%d).Level = %d; want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelForInfo(t *testing.T) {
	table := Build(domain.LevelSettings{BaseXPRequired: 100, XPMultiplier: 1.1, MaxLevel: 5})

	info := table.LevelFor(250)
	if info.Level != 3 {
		t.Fatalf("level = %d; want 3", info.Level)
	}
	if info.CurrentLevelXP != 210 {
		t.Fatalf("current level xp = %d; want 210", info.CurrentLevelXP)
	}
	if info.NextLevelXP != 331 {
		t.Fatalf("next level xp = %d; want 331", info.NextLevelXP)
	}
	if info.XPIntoLevel != 40 {
		t.Fatalf("xp into level = %d; want 40", info.XPIntoLevel)
	}

	atMax := table.LevelFor(464)
	if atMax.Level != 5 || atMax.NextLevelXP != -1 {
		t.Fatalf("at max level got level=%d next=%d; want 5 and -1", atMax.Level, atMax.NextLevelXP)
	}
}

func TestLevelForMonotonic(t *testing.T) {
	table := Build(domain.LevelSettings{BaseXPRequired: 50, XPMultiplier: 1.2, MaxLevel: 30})

	prev := 0
	for xp := int64(0); xp < 100000; xp += 37 {
		level := table.LevelFor(xp).Level
		if level < prev {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev, level, xp)
		}
		// same xp must resolve to the same level
		if again := table.LevelFor(xp).Level; again != level {
			t.Fatalf("LevelFor(%d) not idempotent: %d then %d", xp, level, again)
		}
		prev = level
	}
}

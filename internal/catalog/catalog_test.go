package catalog

import (
	"context"
	"errors"
	"testing"

	"gifting_platform/internal/settings"
)

type stubSource struct {
	blob []byte
	err  error
}

func (s *stubSource) Get(_ context.Context, key string) ([]byte, error) {
	if key != settings.KeyGiftCatalog {
		return nil, nil
	}
	return s.blob, s.err
}

func TestResolveBuiltin(t *testing.T) {
	r := NewResolver(&stubSource{})

	def, err := r.Resolve(context.Background(), "rose")
	if err != nil {
		t.Fatalf("resolve rose: %v", err)
	}
	if def.BaseValueCoins != 1 || def.DisplayName != "Rose" {
		t.Fatalf("unexpected rose definition: %+v", def)
	}

	if _, err := r.Resolve(context.Background(), "nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveOverrideWinsPerField(t *testing.T) {
	blob := []byte(`{"rose":{"base_value_coins":3,"display_name":"Golden Rose"}}`)
	r := NewResolver(&stubSource{blob: blob})

	def, err := r.Resolve(context.Background(), "rose")
	if err != nil {
		t.Fatalf("resolve rose: %v", err)
	}
	if def.BaseValueCoins != 3 {
		t.Fatalf("base value = %d; want overridden 3", def.BaseValueCoins)
	}
	if def.DisplayName != "Golden Rose" {
		t.Fatalf("display name = %q; want overridden", def.DisplayName)
	}
	// fields not overridden keep the built-in value
	if def.Icon != "🌹" || def.XPPerUnit != 1 {
		t.Fatalf("non-overridden fields changed: %+v", def)
	}
}

func TestResolveOverrideOnlyGift(t *testing.T) {
	blob := []byte(`{"dragon":{"display_name":"Dragon","base_value_coins":1000,"xp_per_unit":2000}}`)
	r := NewResolver(&stubSource{blob: blob})

	def, err := r.Resolve(context.Background(), "dragon")
	if err != nil {
		t.Fatalf("resolve dragon: %v", err)
	}
	if def.Code != "dragon" || def.BaseValueCoins != 1000 {
		t.Fatalf("unexpected dragon definition: %+v", def)
	}
}

func TestResolveOverrideWithoutValueFails(t *testing.T) {
	blob := []byte(`{"ghost":{"display_name":"Ghost"}}`)
	r := NewResolver(&stubSource{blob: blob})

	if _, err := r.Resolve(context.Background(), "ghost"); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}

	// an override zeroing out a built-in value is equally invalid
	r2 := NewResolver(&stubSource{blob: []byte(`{"rose":{"base_value_coins":0}}`)})
	if _, err := r2.Resolve(context.Background(), "rose"); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition for zeroed rose, got %v", err)
	}
}

func TestInvalidOverrideBlobIgnored(t *testing.T) {
	r := NewResolver(&stubSource{blob: []byte(`{this is not json`)})

	def, err := r.Resolve(context.Background(), "rose")
	if err != nil {
		t.Fatalf("resolve rose with broken blob: %v", err)
	}
	if def.BaseValueCoins != 1 {
		t.Fatalf("broken blob changed builtin: %+v", def)
	}
}

func TestListSortedAndMerged(t *testing.T) {
	blob := []byte(`{"dragon":{"base_value_coins":1000},"ghost":{"display_name":"Ghost"}}`)
	r := NewResolver(&stubSource{blob: blob})

	defs := r.List(context.Background())
	if len(defs) != len(builtin)+1 {
		// ghost has no value and must be skipped
		t.Fatalf("list length = %d; want %d", len(defs), len(builtin)+1)
	}
	for i := 1; i < len(defs); i++ {
		if defs[i].BaseValueCoins < defs[i-1].BaseValueCoins {
			t.Fatalf("list not sorted by value at %d: %+v", i, defs)
		}
	}
}

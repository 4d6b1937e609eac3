package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()

	if cfg.AppPort != "8080" {
		t.Fatalf("app port = %q; want 8080", cfg.AppPort)
	}
	if cfg.APIRateLimit != 60 || cfg.APIRateWindow != 60 {
		t.Fatalf("api limits = %d/%ds; want 60/60s", cfg.APIRateLimit, cfg.APIRateWindow)
	}
	if cfg.GiftRateLimit != 30 || cfg.GiftRateWindow != 60 {
		t.Fatalf("gift limits = %d/%ds; want 30/60s", cfg.GiftRateLimit, cfg.GiftRateWindow)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q; want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("API_RATE_LIMIT", "120")
	t.Setenv("API_RATE_WINDOW_SECONDS", "30")
	t.Setenv("GIFT_RATE_LIMIT", "10")
	t.Setenv("GIFT_RATE_WINDOW", "5")
	t.Setenv("ADMIN_USER_IDS", "1, 42,7")

	cfg := Load()

	if cfg.APIRateLimit != 120 || cfg.APIRateWindow != 30 {
		t.Fatalf("api limits = %d/%ds; want 120/30s", cfg.APIRateLimit, cfg.APIRateWindow)
	}
	if cfg.GiftRateLimit != 10 || cfg.GiftRateWindow != 5 {
		t.Fatalf("gift limits = %d/%ds; want 10/5s", cfg.GiftRateLimit, cfg.GiftRateWindow)
	}
	want := []int64{1, 42, 7}
	if len(cfg.AdminUserIDs) != len(want) {
		t.Fatalf("admin ids = %v; want %v", cfg.AdminUserIDs, want)
	}
	for i, id := range want {
		if cfg.AdminUserIDs[i] != id {
			t.Fatalf("admin ids = %v; want %v", cfg.AdminUserIDs, want)
		}
	}
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("API_RATE_LIMIT", "not-a-number")
	t.Setenv("GIFT_RATE_LIMIT", "-5")

	cfg := Load()

	if cfg.APIRateLimit != 60 {
		t.Fatalf("api rate limit = %d; want default 60", cfg.APIRateLimit)
	}
	if cfg.GiftRateLimit != 30 {
		t.Fatalf("gift rate limit = %d; want default 30", cfg.GiftRateLimit)
	}
}

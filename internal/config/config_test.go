package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "test-key")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("FARE_CURRENCY", "")
	t.Setenv("MAX_STOPS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RateLimitMax != 10 {
		t.Errorf("RateLimitMax = %d, want 10", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != time.Second {
		t.Errorf("RateLimitWindow = %s, want 1s", cfg.RateLimitWindow)
	}
	if cfg.Currency != "GBP" {
		t.Errorf("Currency = %q, want GBP", cfg.Currency)
	}
	if cfg.FareTimeout != 15*time.Second {
		t.Errorf("FareTimeout = %s, want 15s", cfg.FareTimeout)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when RAPIDAPI_KEY is missing")
	}
}

func TestGetIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SEARCH_WORKERS", "many")

	if got := GetInt("SEARCH_WORKERS", 4); got != 4 {
		t.Fatalf("GetInt = %d, want 4", got)
	}
}

func TestGetDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "250ms")

	if got := GetDuration("RATE_LIMIT_WINDOW", time.Second); got != 250*time.Millisecond {
		t.Fatalf("GetDuration = %s, want 250ms", got)
	}
}

func TestLoadRejectsOutOfRangeMaxStops(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "test-key")

	for _, v := range []string{"0", "10", "13"} {
		t.Setenv("MAX_STOPS", v)
		if _, err := Load(); err == nil {
			t.Fatalf("MAX_STOPS=%s: expected error", v)
		}
	}

	t.Setenv("MAX_STOPS", "9")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("MAX_STOPS=9: unexpected error: %v", err)
	}
	if cfg.MaxStops != 9 {
		t.Fatalf("MaxStops = %d, want 9", cfg.MaxStops)
	}
}

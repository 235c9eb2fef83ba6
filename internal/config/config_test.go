package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Polymarket.DataAPIURL != "https://data-api.polymarket.com" {
		t.Errorf("unexpected data api url %s", cfg.Polymarket.DataAPIURL)
	}
	if cfg.Polymarket.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Polymarket.RequestTimeout)
	}
	if !cfg.Polymarket.ProfileLookup {
		t.Error("expected profile lookup enabled by default")
	}
	if cfg.API.Addr() != "0.0.0.0:8081" {
		t.Errorf("unexpected addr %s", cfg.API.Addr())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("DISPLAY_TIMEZONE", "Europe/Madrid")
	t.Setenv("POLYMARKET_PROFILE_LOOKUP", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.API.Port)
	}
	if cfg.Polymarket.ProfileLookup {
		t.Error("expected profile lookup disabled")
	}

	loc, err := cfg.Display.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Europe/Madrid" {
		t.Errorf("expected Europe/Madrid, got %s", loc)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

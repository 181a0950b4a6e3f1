package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("ITAD_API_KEY", "key")
	t.Setenv("GAMEPASS_CSV_URL", "https://example.com/gamepass.csv")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ITAD.Country != "US" {
		t.Fatalf("unexpected default country: %s", cfg.ITAD.Country)
	}
	if cfg.Catalog.RefreshInterval != 24*time.Hour {
		t.Fatalf("unexpected default refresh interval: %v", cfg.Catalog.RefreshInterval)
	}
	if !cfg.Cleanup.Enabled || cfg.Cleanup.Interval != time.Minute {
		t.Fatalf("unexpected cleanup defaults: %+v", cfg.Cleanup)
	}
	if cfg.KeepAlive.Addr != ":10000" {
		t.Fatalf("unexpected keep-alive addr: %s", cfg.KeepAlive.Addr)
	}
	if cfg.Bot.Prefix != "!" {
		t.Fatalf("unexpected prefix: %s", cfg.Bot.Prefix)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COUNTRY", "SA")
	t.Setenv("CATALOG_REFRESH_HOURS", "6")
	t.Setenv("CLEANUP_ENABLED", "false")
	t.Setenv("CLEANUP_INTERVAL_SECONDS", "300")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ITAD.Country != "SA" {
		t.Fatalf("country override lost: %s", cfg.ITAD.Country)
	}
	if cfg.Catalog.RefreshInterval != 6*time.Hour {
		t.Fatalf("refresh override lost: %v", cfg.Catalog.RefreshInterval)
	}
	if cfg.Cleanup.Enabled {
		t.Fatal("cleanup disable lost")
	}
	if cfg.Cleanup.Interval != 5*time.Minute {
		t.Fatalf("cleanup interval override lost: %v", cfg.Cleanup.Interval)
	}
	if cfg.Redis.Port != 6380 {
		t.Fatalf("redis port override lost: %d", cfg.Redis.Port)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("ITAD_API_KEY", "key")
	t.Setenv("GAMEPASS_CSV_URL", "https://example.com/gamepass.csv")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a missing token")
	}
}

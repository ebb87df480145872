package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequiresTelegramCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without Telegram credentials")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "chat")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LookbackDays != 7 {
		t.Errorf("expected default lookback 7, got %d", cfg.LookbackDays)
	}
	if cfg.AlertThreshold != 80 {
		t.Errorf("expected default alert threshold 80, got %d", cfg.AlertThreshold)
	}
	if cfg.StateBackend != "file" {
		t.Errorf("expected file backend default, got %q", cfg.StateBackend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "chat")
	t.Setenv("STATE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown state backend")
	}
}

func TestLoadWatchlistMissingFileYieldsDefaults(t *testing.T) {
	wl, err := LoadWatchlist(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing watchlist should not error: %v", err)
	}
	if wl.Primary != "Saudi Arabia" {
		t.Errorf("expected default primary, got %q", wl.Primary)
	}
	if len(wl.Countries) == 0 {
		t.Error("expected default countries")
	}
}

func TestLoadWatchlistFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	data := `primary: Saudi Arabia
countries:
  - Sudan
  - Yemen
weights:
  "test-disease": 42
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	wl, err := LoadWatchlist(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(wl.Countries) != 2 || wl.Countries[1] != "Yemen" {
		t.Errorf("unexpected countries: %v", wl.Countries)
	}
	if wl.Weights["test-disease"] != 42 {
		t.Errorf("expected weight override 42, got %d", wl.Weights["test-disease"])
	}
}

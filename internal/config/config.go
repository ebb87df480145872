// Package config loads the runtime configuration from the environment and
// the YAML watch-list file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Telegram settings
	TelegramToken  string
	TelegramChatID string

	// Monitoring scope
	LookbackDays   int
	MaxItems       int // cap of new events per run
	MaxAlerts      int // cap of standalone alert messages per run
	AlertThreshold int // minimum score for an immediate alert
	TopN           int // events listed in the digest

	// State persistence
	StateBackend  string // "file" or "sqlite"
	StateFilePath string
	StateDBPath   string

	// Config file paths
	SourcesConfigPath   string
	WatchlistConfigPath string

	// HTTP settings
	RequestTimeout       time.Duration
	MaxRequestsPerSource int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		LookbackDays:         7,
		MaxItems:             25,
		MaxAlerts:            5,
		AlertThreshold:       80,
		TopN:                 10,
		StateBackend:         "file",
		RequestTimeout:       60 * time.Second,
		MaxRequestsPerSource: 20,
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.StateFilePath = getEnvOrDefault("STATE_FILE_PATH", "seen_signals.json")
	cfg.StateDBPath = getEnvOrDefault("STATE_DB_PATH", "seen_signals.db")
	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", "configs/sources.yaml")
	cfg.WatchlistConfigPath = getEnvOrDefault("WATCHLIST_CONFIG_PATH", "configs/watchlist.yaml")

	if backend := os.Getenv("STATE_BACKEND"); backend != "" {
		cfg.StateBackend = backend
	}

	cfg.LookbackDays = getEnvIntOrDefault("LOOKBACK_DAYS", cfg.LookbackDays)
	cfg.MaxItems = getEnvIntOrDefault("MAX_ITEMS", cfg.MaxItems)
	cfg.MaxAlerts = getEnvIntOrDefault("MAX_ALERTS", cfg.MaxAlerts)
	cfg.AlertThreshold = getEnvIntOrDefault("ALERT_THRESHOLD", cfg.AlertThreshold)
	cfg.TopN = getEnvIntOrDefault("DIGEST_TOP_N", cfg.TopN)
	cfg.MaxRequestsPerSource = getEnvIntOrDefault("MAX_REQUESTS_PER_SOURCE", cfg.MaxRequestsPerSource)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	if c.StateBackend != "file" && c.StateBackend != "sqlite" {
		return fmt.Errorf("STATE_BACKEND must be 'file' or 'sqlite'")
	}
	if c.AlertThreshold < 0 || c.AlertThreshold > 100 {
		return fmt.Errorf("ALERT_THRESHOLD must be in [0,100]")
	}
	return nil
}

// Lookback returns the lookback window as a duration.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.LookbackDays) * 24 * time.Hour
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Watchlist is the YAML watch-list structure: the primary country of
// concern, the other watched countries, and optional disease weight
// overrides keyed by canonical disease label.
type Watchlist struct {
	Primary   string         `yaml:"primary"`
	Countries []string       `yaml:"countries"`
	Weights   map[string]int `yaml:"weights"`
}

// DefaultWatchlist mirrors the deployment this monitor was built for.
func DefaultWatchlist() *Watchlist {
	return &Watchlist{
		Primary:   "Saudi Arabia",
		Countries: []string{"Sudan", "Somalia", "Ethiopia", "Djibouti", "Jordan"},
	}
}

// LoadWatchlist reads the watch-list file; a missing file yields the
// defaults rather than an error.
func LoadWatchlist(path string) (*Watchlist, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultWatchlist(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wl Watchlist
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&wl); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %v", err)
	}
	if wl.Primary == "" {
		wl.Primary = DefaultWatchlist().Primary
	}
	if len(wl.Countries) == 0 {
		wl.Countries = DefaultWatchlist().Countries
	}
	return &wl, nil
}

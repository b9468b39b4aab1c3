package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Input handling
	InputEncoding string
	MaxInputBytes int64

	// Shelter API
	SheltersAPIURL    string
	SheltersUserAgent string
	SheltersTimeout   time.Duration
	FeaturesFile      string
}

func Load() Config {
	cfg := Config{
		LogLevel:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "text")),

		InputEncoding: envOr("INPUT_ENCODING", "utf-8"),
		MaxInputBytes: envInt64("MAX_INPUT_BYTES", 67108864), // 64MB

		SheltersAPIURL:    envOr("SHELTERS_API_URL", "https://shelterapp.dk/api/get"),
		SheltersUserAgent: envOr("SHELTERS_USER_AGENT", "Mozilla/5.0 (Linux)"),
		SheltersTimeout:   envDuration("SHELTERS_HTTP_TIMEOUT", 30*time.Second),
		FeaturesFile:      os.Getenv("SHELTERS_FEATURES_FILE"),
	}

	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = 67108864
	}
	if cfg.SheltersTimeout <= 0 {
		cfg.SheltersTimeout = 30 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.SheltersAPIURL == "" {
		return fmt.Errorf("SHELTERS_API_URL is required")
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

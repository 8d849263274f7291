package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the service.
type Config struct {
	DatabaseURL      string
	ListenAddr       string
	LogLevel         string
	GenerateInterval time.Duration // how often the recurrence due pass runs
	GenerateAt       string        // optional HH:MM for an additional daily pass
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:      strings.TrimSpace(os.Getenv("MOOTODO_DB")),
		ListenAddr:       strings.TrimSpace(os.Getenv("MOOTODO_ADDR")),
		LogLevel:         strings.TrimSpace(os.Getenv("MOOTODO_LOG_LEVEL")),
		GenerateInterval: parseInterval(strings.TrimSpace(os.Getenv("MOOTODO_GENERATE_INTERVAL_HOURS"))),
		GenerateAt:       strings.TrimSpace(os.Getenv("MOOTODO_GENERATE_AT")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "mootodo.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8931"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.GenerateInterval == 0 {
		cfg.GenerateInterval = 6 * time.Hour
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

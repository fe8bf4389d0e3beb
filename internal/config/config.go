package config

import (
	"os"
	"strconv"

	"driftscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Drift   DriftConfig
	Storage StorageConfig
}

// DriftConfig holds drift computation settings
type DriftConfig struct {
	Bins        int    // PSI bin count; JSD uses max(10, 2*Bins)
	LabelColumn string // classification target, excluded from scoring
	Workers     int    // parallel per-feature scoring limit
}

// StorageConfig holds optional report persistence settings
type StorageConfig struct {
	DatabaseURL string // empty disables persistence
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Drift: DriftConfig{
			Bins:        getEnvIntOrDefault("DRIFT_BINS", 10),
			LabelColumn: getEnvOrDefault("LABEL_COLUMN", "label"),
			Workers:     getEnvIntOrDefault("DRIFT_WORKERS", 4),
		},
		Storage: StorageConfig{
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Drift.Bins < 1 {
		return errors.ConfigInvalid("DRIFT_BINS must be >= 1")
	}
	if config.Drift.LabelColumn == "" {
		return errors.ConfigInvalid("LABEL_COLUMN must not be empty")
	}
	if config.Drift.Workers < 1 {
		return errors.ConfigInvalid("DRIFT_WORKERS must be >= 1")
	}
	return nil
}

// Helper functions for environment variable parsing
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

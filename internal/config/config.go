package config

import (
	"os"
	"strconv"

	"lsparrow/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	MaxFileSize int64 // bytes
}

// AnalysisConfig holds the heuristic constants of the analysis core.
//
// These are tunables, not mathematical requirements: Epsilon guards the
// higher-moment and K-S computations against near-zero variance, the two
// thresholds drive groupable-column detection.
type AnalysisConfig struct {
	Epsilon              float64
	MultiselectThreshold float64
	UniqueRatioThreshold float64
}

// DefaultAnalysis returns the analysis constants used when nothing is
// configured.
func DefaultAnalysis() AnalysisConfig {
	return AnalysisConfig{
		Epsilon:              1e-10,
		MultiselectThreshold: 0.10,
		UniqueRatioThreshold: 0.90,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 16*1024*1024),
		},
		Analysis: AnalysisConfig{
			Epsilon:              getEnvFloatOrDefault("ANALYSIS_EPSILON", 1e-10),
			MultiselectThreshold: getEnvFloatOrDefault("MULTISELECT_THRESHOLD", 0.10),
			UniqueRatioThreshold: getEnvFloatOrDefault("UNIQUE_RATIO_THRESHOLD", 0.90),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Upload.MaxFileSize <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Analysis.Epsilon <= 0 {
		return errors.ConfigInvalid("ANALYSIS_EPSILON must be positive")
	}
	if config.Analysis.MultiselectThreshold < 0 || config.Analysis.MultiselectThreshold > 1 {
		return errors.ConfigInvalid("MULTISELECT_THRESHOLD must be in [0,1]")
	}
	if config.Analysis.UniqueRatioThreshold < 0 || config.Analysis.UniqueRatioThreshold > 1 {
		return errors.ConfigInvalid("UNIQUE_RATIO_THRESHOLD must be in [0,1]")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

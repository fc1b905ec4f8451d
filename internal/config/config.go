package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gobest/internal/errors"
)

// Config represents the complete engine configuration for hosting processes.
// The engine itself never reads the environment: everything here is handed
// to it through explicit structs.
type Config struct {
	Engine EngineConfig
}

// EngineConfig holds resampling and estimation settings
type EngineConfig struct {
	// Seed is the base random seed. SeedSet is false when the environment
	// leaves it unset; the orchestrator then draws a seed once and records
	// it in the run manifest.
	Seed    int64
	SeedSet bool

	Resamples       int
	Permutations    int
	ConfidenceLevel float64
	Workers         int
}

// Defaults
const (
	DefaultResamples       = 5000
	DefaultPermutations    = 5000
	DefaultConfidenceLevel = 0.95
	DefaultWorkers         = 1
)

// Load reads configuration from the environment (and a .env file when
// present) and validates it.
func Load() (*Config, error) {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	engine, err := loadEngineConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engine configuration")
	}

	config := &Config{Engine: *engine}
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadEngineConfig() (*EngineConfig, error) {
	engine := &EngineConfig{
		Resamples:       getEnvIntOrDefault("RESAMPLE_COUNT", DefaultResamples),
		Permutations:    getEnvIntOrDefault("PERMUTATION_COUNT", DefaultPermutations),
		ConfidenceLevel: getEnvFloatOrDefault("CONFIDENCE_LEVEL", DefaultConfidenceLevel),
		Workers:         getEnvIntOrDefault("WORKERS", DefaultWorkers),
	}

	if value := os.Getenv("RANDOM_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("RANDOM_SEED must be an integer")
		}
		engine.Seed = seed
		engine.SeedSet = true
	}

	return engine, nil
}

func validateConfig(config *Config) error {
	engine := config.Engine
	if engine.Resamples < 1 {
		return errors.ConfigInvalid("RESAMPLE_COUNT must be positive")
	}
	if engine.Permutations < 0 {
		return errors.ConfigInvalid("PERMUTATION_COUNT cannot be negative")
	}
	if engine.ConfidenceLevel <= 0 || engine.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be in (0,1)")
	}
	if engine.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be positive")
	}
	return nil
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
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

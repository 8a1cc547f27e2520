package config

import (
	"os"
	"strconv"
	"time"

	"relifit/adapters/estimation"
	"relifit/domain/dataset"
	"relifit/internal/apperr"
)

// Config represents the complete application configuration
type Config struct {
	Estimation EstimationConfig
	Data       DataConfig
}

// EstimationConfig holds fit-engine and optimizer settings
type EstimationConfig struct {
	ConfidenceLevel   float64
	MaxIterations     int
	Tolerance         float64
	MinFailures       int
	ShapeFallbackMax  float64
	MaxParallelTrials int
	FitTimeout        time.Duration // zero means no deadline
}

// DataConfig holds dataset handling settings
type DataConfig struct {
	TimeUnit string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Estimation: *loadEstimationConfig(),
		Data:       *loadDataConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, apperr.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadEstimationConfig() *EstimationConfig {
	return &EstimationConfig{
		ConfidenceLevel:   getEnvFloatOrDefault("RELIFIT_CONFIDENCE_LEVEL", 0.95),
		MaxIterations:     getEnvIntOrDefault("RELIFIT_MAX_ITERATIONS", 1000),
		Tolerance:         getEnvFloatOrDefault("RELIFIT_TOLERANCE", 1e-8),
		MinFailures:       getEnvIntOrDefault("RELIFIT_MIN_FAILURES", dataset.MinFailures),
		ShapeFallbackMax:  getEnvFloatOrDefault("RELIFIT_SHAPE_FALLBACK_MAX", 20.0),
		MaxParallelTrials: getEnvIntOrDefault("RELIFIT_MAX_PARALLEL_TRIALS", 4),
		FitTimeout:        getEnvDurationOrDefault("RELIFIT_FIT_TIMEOUT", 0),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		TimeUnit: getEnvOrDefault("RELIFIT_TIME_UNIT", dataset.DefaultTimeUnit),
	}
}

func validateConfig(config *Config) error {
	est := config.Estimation
	if est.ConfidenceLevel <= 0 || est.ConfidenceLevel >= 1 {
		return apperr.ConfigInvalid("RELIFIT_CONFIDENCE_LEVEL must be within (0, 1)")
	}
	if est.MaxIterations < 1 {
		return apperr.ConfigInvalid("RELIFIT_MAX_ITERATIONS must be at least 1")
	}
	if est.Tolerance <= 0 {
		return apperr.ConfigInvalid("RELIFIT_TOLERANCE must be positive")
	}
	if est.MinFailures < dataset.MinFailures {
		return apperr.ConfigInvalid("RELIFIT_MIN_FAILURES cannot go below the dataset floor")
	}
	if est.ShapeFallbackMax <= 0 {
		return apperr.ConfigInvalid("RELIFIT_SHAPE_FALLBACK_MAX must be positive")
	}
	if est.MaxParallelTrials < 1 {
		return apperr.ConfigInvalid("RELIFIT_MAX_PARALLEL_TRIALS must be at least 1")
	}
	if est.FitTimeout < 0 {
		return apperr.ConfigInvalid("RELIFIT_FIT_TIMEOUT cannot be negative")
	}
	if config.Data.TimeUnit == "" {
		return apperr.ConfigInvalid("RELIFIT_TIME_UNIT cannot be empty")
	}
	return nil
}

// EstimatorOptions materializes the fit-engine options from the loaded
// configuration. Optimizer tolerances go to the minimizer separately.
func (c *Config) EstimatorOptions() estimation.Options {
	return estimation.Options{
		ConfidenceLevel:   c.Estimation.ConfidenceLevel,
		ShapeFallbackMax:  c.Estimation.ShapeFallbackMax,
		MaxParallelTrials: c.Estimation.MaxParallelTrials,
	}
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

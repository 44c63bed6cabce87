package config

import (
	"fmt"
)

// MinMaxSamplesUsed is the smallest window-search bound the predictor accepts
const MinMaxSamplesUsed = 3

// Config represents the complete application configuration
type Config struct {
	Predictor PredictorConfig `mapstructure:"predictor"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PredictorConfig represents moving-average predictor configuration
type PredictorConfig struct {
	MaxSamplesUsed int `mapstructure:"max_samples_used"` // Upper bound on candidate window length (>= 3)
	Horizon        int `mapstructure:"horizon"`          // Number of values to predict per run
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Predictor.Validate(); err != nil {
		return fmt.Errorf("predictor config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates predictor configuration
func (c *PredictorConfig) Validate() error {
	if c.MaxSamplesUsed < MinMaxSamplesUsed {
		return fmt.Errorf("predictor.max_samples_used must be at least %d, got %d", MinMaxSamplesUsed, c.MaxSamplesUsed)
	}

	if c.Horizon < 1 {
		return fmt.Errorf("predictor.horizon must be at least 1, got %d", c.Horizon)
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

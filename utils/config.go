package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds training configuration
type Config struct {
	Regime       string  `yaml:"regime"` // "epoch" or "iter"
	MaxEpochs    int     `yaml:"maxEpochs"`
	MaxIters     int     `yaml:"maxIters"`
	ValInterval  int     `yaml:"valInterval"` // 0 disables validation
	BatchSize    int     `yaml:"batchSize"`
	LearningRate float64 `yaml:"learningRate"`
	Samples      int     `yaml:"samples"`
	Features     int     `yaml:"features"`
	Classes      int     `yaml:"classes"`
	Seed         int64   `yaml:"seed"`
}

// DefaultConfig returns a configuration that trains the demo classifier.
func DefaultConfig() *Config {
	return &Config{
		Regime:       "epoch",
		MaxEpochs:    5,
		ValInterval:  1,
		BatchSize:    16,
		LearningRate: 0.5,
		Samples:      256,
		Features:     4,
		Classes:      3,
		Seed:         42,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return config, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	switch config.Regime {
	case "epoch":
		if config.MaxEpochs <= 0 {
			return fmt.Errorf("maxEpochs must be positive for the epoch regime")
		}
	case "iter":
		if config.MaxIters <= 0 {
			return fmt.Errorf("maxIters must be positive for the iter regime")
		}
	default:
		return fmt.Errorf("regime must be 'epoch' or 'iter', got %q", config.Regime)
	}

	if config.ValInterval < 0 {
		return fmt.Errorf("valInterval must not be negative")
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	if config.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}

	if config.Samples <= 0 || config.Features <= 0 || config.Classes <= 0 {
		return fmt.Errorf("samples, features and classes must be positive")
	}

	return nil
}

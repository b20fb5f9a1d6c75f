// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the mblearn command:
// built-in defaults, optionally overridden by a YAML file, then by flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mblearn/skeleton"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete run configuration.
type Config struct {
	// Data is the CSV file to learn from (header row = variable names).
	Data string `yaml:"data"`

	// Alpha is the independence threshold; 0 selects 5/n for n samples.
	Alpha float64 `yaml:"alpha"`

	// Targets restricts discovery; empty means every variable.
	Targets []string `yaml:"targets"`

	// Concurrency is the number of targets discovered at once.
	Concurrency int `yaml:"concurrency"`

	// BatchRounds freezes conditioning sets per pass.
	BatchRounds bool `yaml:"batch_rounds"`

	Entropy  EntropyConfig  `yaml:"entropy"`
	Skeleton SkeletonConfig `yaml:"skeleton"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EntropyConfig configures the independence oracle.
type EntropyConfig struct {
	Cache               bool `yaml:"cache"`
	MinSamplesPerConfig int  `yaml:"min_samples_per_config"`
}

// SkeletonConfig configures skeleton learning.
type SkeletonConfig struct {
	Policy      string `yaml:"policy"`
	MaxCondSize int    `yaml:"max_cond_size"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Alpha:       0,
		Concurrency: 1,
		Entropy: EntropyConfig{
			Cache:               true,
			MinSamplesPerConfig: 0,
		},
		Skeleton: SkeletonConfig{
			Policy:      skeleton.Symmetric.String(),
			MaxCondSize: -1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath is read when no configuration file is named explicitly.
const DefaultPath = "mblearn.yaml"

// Load reads path over the defaults. An empty path yields the defaults; a
// named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks value ranges. It does not touch the file system.
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("%w: data file is required", ErrInvalid)
	}
	if c.Alpha < 0 || math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0) {
		return fmt.Errorf("%w: alpha=%v must be >= 0 and finite", ErrInvalid, c.Alpha)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency=%d must be >= 1", ErrInvalid, c.Concurrency)
	}
	if c.Entropy.MinSamplesPerConfig < 0 {
		return fmt.Errorf("%w: min_samples_per_config=%d must be >= 0", ErrInvalid, c.Entropy.MinSamplesPerConfig)
	}
	if c.Skeleton.MaxCondSize < -1 {
		return fmt.Errorf("%w: max_cond_size=%d must be >= -1", ErrInvalid, c.Skeleton.MaxCondSize)
	}
	if _, err := skeleton.ParsePolicy(c.Skeleton.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level=%q", ErrInvalid, c.Logging.Level)
	}

	return nil
}

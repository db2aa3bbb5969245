// Package config handles configuration loading for the demo host:
// YAML file plus environment-variable overrides over built-in
// defaults. Precedence: environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all demo host configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Demo    DemoConfig    `yaml:"demo"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DemoConfig holds settings for the demo call sequence.
type DemoConfig struct {
	// ProbeMethods are extra method names invoked after
	// getPlatformVersion to show the not-implemented reply path.
	ProbeMethods []string `yaml:"probe_methods"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Demo: DemoConfig{
			ProbeMethods: []string{"getBatteryLevel"},
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges
// with defaults. Environment variables take highest precedence.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty, standard locations are searched; a missing file
// means defaults and environment variables only.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Locate()
	}
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — use defaults + env overrides
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// Locate searches standard config file paths and returns the first one
// found. Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables have the highest precedence.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("NOMADE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("NOMADE_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

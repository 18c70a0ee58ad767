// Package config loads, defaults and validates the screener configuration
// from a YAML file with ${ENV} expansion.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a screener run.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Providers ProvidersConfig `yaml:"providers"`
	Report    ReportConfig    `yaml:"report"`
	Verbosity int             `yaml:"verbosity"` // 0=error,1=warn,2=info,3=debug,4=trace
}

// ScreenConfig holds the user-facing screening parameters.
type ScreenConfig struct {
	Symbols      int     `yaml:"symbols"`       // universe prefix to screen, [25,150]
	Capital      float64 `yaml:"capital"`       // available capital in dollars
	MaturityDays int     `yaml:"maturity_days"` // option maturity in calendar days
	MinHistory   int     `yaml:"min_history"`   // closes required to trust the volatility estimate
	Top          int     `yaml:"top"`           // leaderboard size
}

// ProvidersConfig selects and configures the data collaborators. An empty
// AlphaVantageKey and DataDir selects the synthetic provider; an empty
// FREDKey pins the rate to the default.
type ProvidersConfig struct {
	AlphaVantageKey string        `yaml:"alpha_vantage_key"`
	FREDKey         string        `yaml:"fred_key"`
	UniverseURL     string        `yaml:"universe_url"`
	UniverseFile    string        `yaml:"universe_file"` // local constituents CSV, overrides URL
	DataDir         string        `yaml:"data_dir"`      // per-symbol close CSVs, overrides HTTP
	Throttle        time.Duration `yaml:"throttle"`      // spacing between price fetches
	Seed            int64         `yaml:"seed"`          // synthetic provider seed, 0 = clock
}

// ReportConfig holds the output settings.
type ReportConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

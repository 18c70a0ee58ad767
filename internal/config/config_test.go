package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "screen.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadAndValidate(t *testing.T) {
	yaml := `
screen:
  symbols: 50
  capital: 2500
  maturity_days: 30
  min_history: 30
  top: 25
providers:
  alpha_vantage_key: test-key
report:
  dir: ./out
verbosity: 2
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Screen.Symbols != 50 {
		t.Errorf("Screen.Symbols = %d, want 50", cfg.Screen.Symbols)
	}
	if cfg.Screen.Capital != 2500 {
		t.Errorf("Screen.Capital = %f, want 2500", cfg.Screen.Capital)
	}
	if cfg.Providers.AlphaVantageKey != "test-key" {
		t.Errorf("Providers.AlphaVantageKey = %q", cfg.Providers.AlphaVantageKey)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_AV_KEY", "secret123")

	yaml := `
screen:
  symbols: 25
  capital: 100
providers:
  alpha_vantage_key: ${TEST_AV_KEY}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Providers.AlphaVantageKey != "secret123" {
		t.Errorf("AlphaVantageKey = %q, want %q", cfg.Providers.AlphaVantageKey, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "screen:\n  capital: 500\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Screen.Capital != 500 {
		t.Errorf("explicit capital overridden: %f", cfg.Screen.Capital)
	}
	if cfg.Screen.Symbols != DefaultSymbols {
		t.Errorf("Screen.Symbols = %d, want default %d", cfg.Screen.Symbols, DefaultSymbols)
	}
	if cfg.Screen.MinHistory != DefaultMinHistory {
		t.Errorf("Screen.MinHistory = %d, want default %d", cfg.Screen.MinHistory, DefaultMinHistory)
	}
	if cfg.Screen.Top != DefaultTop {
		t.Errorf("Screen.Top = %d, want default %d", cfg.Screen.Top, DefaultTop)
	}
	if cfg.Providers.Throttle != DefaultThrottle {
		t.Errorf("Providers.Throttle = %v, want default %v", cfg.Providers.Throttle, DefaultThrottle)
	}
	if cfg.Report.Dir != DefaultReportDir {
		t.Errorf("Report.Dir = %q, want default %q", cfg.Report.Dir, DefaultReportDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.applyDefaults()
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"symbols under floor", func(c *Config) { c.Screen.Symbols = 10 }},
		{"symbols over ceiling", func(c *Config) { c.Screen.Symbols = 500 }},
		{"capital under floor", func(c *Config) { c.Screen.Capital = 50 }},
		{"negative capital", func(c *Config) { c.Screen.Capital = -100 }},
		{"zero maturity", func(c *Config) { c.Screen.MaturityDays = 0 }},
		{"min history too small", func(c *Config) { c.Screen.MinHistory = 1 }},
		{"zero top", func(c *Config) { c.Screen.Top = 0 }},
		{"negative throttle", func(c *Config) { c.Providers.Throttle = -1 }},
		{"empty report dir", func(c *Config) { c.Report.Dir = "" }},
		{"verbosity out of range", func(c *Config) { c.Verbosity = 9 }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("defaulted config must validate: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

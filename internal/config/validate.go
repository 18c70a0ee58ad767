package config

import "fmt"

// Bounds on the user-facing parameters.
const (
	MinSymbols = 25
	MaxSymbols = 150
	MinCapital = 100.0
)

// Validate checks that all values are usable. A bad capital or symbol
// count must stop the run before any screening begins.
func (c *Config) Validate() error {
	if c.Screen.Symbols < MinSymbols || c.Screen.Symbols > MaxSymbols {
		return fmt.Errorf("screen.symbols must be between %d and %d, got %d",
			MinSymbols, MaxSymbols, c.Screen.Symbols)
	}
	if c.Screen.Capital < MinCapital {
		return fmt.Errorf("screen.capital must be at least %.0f, got %.2f",
			MinCapital, c.Screen.Capital)
	}
	if c.Screen.MaturityDays < 1 {
		return fmt.Errorf("screen.maturity_days must be >= 1, got %d", c.Screen.MaturityDays)
	}
	if c.Screen.MinHistory < 2 {
		return fmt.Errorf("screen.min_history must be >= 2, got %d", c.Screen.MinHistory)
	}
	if c.Screen.Top < 1 {
		return fmt.Errorf("screen.top must be >= 1, got %d", c.Screen.Top)
	}

	if c.Providers.Throttle < 0 {
		return fmt.Errorf("providers.throttle cannot be negative, got %v", c.Providers.Throttle)
	}

	if c.Report.Dir == "" {
		return fmt.Errorf("report.dir is required")
	}

	if c.Verbosity < 0 || c.Verbosity > 4 {
		return fmt.Errorf("verbosity must be between 0 and 4, got %d", c.Verbosity)
	}
	return nil
}

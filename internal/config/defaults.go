package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultSymbols      = 50
	DefaultCapital      = 1000.0
	DefaultMaturityDays = 30
	DefaultMinHistory   = 30
	DefaultTop          = 25
	DefaultThrottle     = 800 * time.Millisecond
	DefaultReportDir    = "./out"
	DefaultVerbosity    = 2 // info
)

func (c *Config) applyDefaults() {
	if c.Screen.Symbols == 0 {
		c.Screen.Symbols = DefaultSymbols
	}
	if c.Screen.Capital == 0 {
		c.Screen.Capital = DefaultCapital
	}
	if c.Screen.MaturityDays == 0 {
		c.Screen.MaturityDays = DefaultMaturityDays
	}
	if c.Screen.MinHistory == 0 {
		c.Screen.MinHistory = DefaultMinHistory
	}
	if c.Screen.Top == 0 {
		c.Screen.Top = DefaultTop
	}

	if c.Providers.Throttle == 0 {
		c.Providers.Throttle = DefaultThrottle
	}

	if c.Report.Dir == "" {
		c.Report.Dir = DefaultReportDir
	}

	if c.Verbosity == 0 {
		c.Verbosity = DefaultVerbosity
	}
}

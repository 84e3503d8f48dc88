// Package config handles configuration loading for the GST compliance
// engine. It supports YAML config files with environment variable overrides.
// The statutory rule tables (due dates, penalty rates) live here so that
// rule changes are config edits, not code changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"  yaml:"engine"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig carries the injected rule tables the engine depends on.
type EngineConfig struct {
	DueDates []DueDateRule `mapstructure:"due_dates" yaml:"due_dates"`
	Penalty  PenaltyConfig `mapstructure:"penalty"   yaml:"penalty"`
}

// DueDateRule resolves the statutory deadline for one return type: day
// `day` of the month `month_offset` months after the tax period ends.
// GSTR-3B for April (period end 30 Apr) with offset 1, day 20 → 20 May.
type DueDateRule struct {
	ReturnType  string `mapstructure:"return_type"  yaml:"return_type"`
	MonthOffset int    `mapstructure:"month_offset" yaml:"month_offset"`
	Day         int    `mapstructure:"day"          yaml:"day"`
}

// PenaltyConfig holds the statutory late-filing penalty figures.
type PenaltyConfig struct {
	PerDayRate   float64 `mapstructure:"per_day_rate"   yaml:"per_day_rate"`   // ₹ per day of delay
	PerReturnCap float64 `mapstructure:"per_return_cap" yaml:"per_return_cap"` // ₹ cap per late return
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.gstcompli/config.yaml (home directory)
//  3. /etc/gstcompli/config.yaml (system)
//
// Environment variables override config file values.
// Format: GSTCOMPLI_<SECTION>_<KEY>, e.g., GSTCOMPLI_LOGGING_LEVEL
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".gstcompli"))
	v.AddConfigPath("/etc/gstcompli")

	v.SetEnvPrefix("GSTCOMPLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("GSTCOMPLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unusable rule tables up front, before any record is
// processed. There are no recoverable configuration errors mid-analysis.
func (c *Config) Validate() error {
	if len(c.Engine.DueDates) == 0 {
		return fmt.Errorf("config: engine.due_dates must contain at least one rule")
	}
	haveFallback := false
	for i, r := range c.Engine.DueDates {
		if strings.TrimSpace(r.ReturnType) == "" {
			return fmt.Errorf("config: engine.due_dates[%d]: return_type is empty", i)
		}
		if r.MonthOffset < 0 || r.MonthOffset > 24 {
			return fmt.Errorf("config: engine.due_dates[%d] (%s): month_offset %d out of range", i, r.ReturnType, r.MonthOffset)
		}
		if r.Day < 1 || r.Day > 31 {
			return fmt.Errorf("config: engine.due_dates[%d] (%s): day %d out of range", i, r.ReturnType, r.Day)
		}
		if strings.EqualFold(r.ReturnType, "OTHER") {
			haveFallback = true
		}
	}
	if !haveFallback {
		return fmt.Errorf("config: engine.due_dates needs an OTHER rule as the fallback for unrecognized return types")
	}
	if c.Engine.Penalty.PerDayRate <= 0 {
		return fmt.Errorf("config: engine.penalty.per_day_rate must be positive")
	}
	if c.Engine.Penalty.PerReturnCap <= 0 {
		return fmt.Errorf("config: engine.penalty.per_return_cap must be positive")
	}
	return nil
}

// setDefaults sets sensible defaults for all config values. The due-date
// defaults mirror the commonly published GSTR deadlines; they are data, not
// law, and jurisdictional changes belong in the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.due_dates", []map[string]any{
		{"return_type": "GSTR-1", "month_offset": 1, "day": 11},
		{"return_type": "GSTR-3B", "month_offset": 1, "day": 20},
		{"return_type": "GSTR-9", "month_offset": 9, "day": 31},
		{"return_type": "OTHER", "month_offset": 1, "day": 20},
	})

	// Late-filing penalty: ₹50/day (₹25 CGST + ₹25 SGST), capped per return.
	v.SetDefault("engine.penalty.per_day_rate", 50)
	v.SetDefault("engine.penalty.per_return_cap", 5000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

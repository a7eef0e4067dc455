// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Validate after every layer is applied; failures wrap ErrInvalidConfig.
// - Loading failures wrap ErrLoadConfig.
package config

import (
	"fmt"

	"github.com/okian/flightdesk/internal/domain/scoring"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Store selects the revision store backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath is the database file used when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// HistorySize bounds how many snapshot revisions are retained.
	HistorySize int `koanf:"history_size"`

	// SeedDir optionally names a CSV export directory loaded at startup.
	SeedDir string `koanf:"seed_dir"`

	// DefaultTopN is used when a ranking request gives no limit.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps ?limit on ranking endpoints.
	MaxTopN int `koanf:"max_top_n"`

	// MaintenanceLookaheadDays extends the maintenance check past the mission start.
	MaintenanceLookaheadDays int `koanf:"maintenance_lookahead_days"`

	// Scoring weights.
	WeightSkill        float64 `koanf:"weight_skill"`
	WeightCert         float64 `koanf:"weight_cert"`
	WeightLocation     float64 `koanf:"weight_location"`
	WeightAvailability float64 `koanf:"weight_availability"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		Addr:                     ":9080",
		Store:                    StoreMemory,
		SQLitePath:               "data/flightdesk.db",
		HistorySize:              20,
		DefaultTopN:              3,
		MaxTopN:                  50,
		MaintenanceLookaheadDays: 0,
		WeightSkill:              scoring.DefaultSkillWeight,
		WeightCert:               scoring.DefaultCertWeight,
		WeightLocation:           scoring.DefaultLocationWeight,
		WeightAvailability:       scoring.DefaultAvailabilityWeight,
	}
}

// Weights returns the scoring weights. They are validated by scoring.New.
func (c *Config) Weights() scoring.Weights {
	return scoring.Weights{
		Skill:        c.WeightSkill,
		Cert:         c.WeightCert,
		Location:     c.WeightLocation,
		Availability: c.WeightAvailability,
	}
}

// Validate checks the settings that do not belong to a single component.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Store != StoreMemory && c.Store != StoreSQLite:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownStore, c.Store)
	case c.Store == StoreSQLite && c.SQLitePath == "":
		return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
	case c.DefaultTopN < 1:
		return fmt.Errorf("%w: default_top_n must be at least 1", ErrInvalidConfig)
	case c.MaxTopN < c.DefaultTopN:
		return fmt.Errorf("%w: max_top_n must not be below default_top_n", ErrInvalidConfig)
	case c.MaintenanceLookaheadDays < 0:
		return fmt.Errorf("%w: maintenance_lookahead_days must not be negative", ErrInvalidConfig)
	}
	return nil
}

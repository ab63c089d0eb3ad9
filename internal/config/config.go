// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/robfig/cron/v3"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EventsFile is the YAML seed file of events; empty starts with no events.
	EventsFile string `koanf:"events_file"`

	// ReloadCron re-reads EventsFile on a cron schedule; empty disables it.
	ReloadCron string `koanf:"reload_cron"`

	// PrefsFile persists user preferences such as the dismissed zoom hint.
	PrefsFile string `koanf:"prefs_file"`

	// Timezone is the IANA zone the festival runs in.
	Timezone string `koanf:"timezone"`

	// FestivalFriday is the calendar date (YYYY-MM-DD) of the festival Friday.
	FestivalFriday string `koanf:"festival_friday"`

	// RowHeight and HeaderHeight are the grid geometry in px at zoom 1.
	RowHeight    float64 `koanf:"row_height"`
	HeaderHeight float64 `koanf:"header_height"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		PrefsFile:      "festgrid-prefs.json",
		Timezone:       "Europe/Berlin",
		FestivalFriday: "2026-06-19",
		RowHeight:      60,
		HeaderHeight:   40,
	}
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Friday parses FestivalFriday in loc.
func (c *Config) Friday(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, c.FestivalFriday, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: festival_friday %q: %w", ErrInvalidConfig, c.FestivalFriday, err)
	}
	if d.Weekday() != time.Friday {
		return time.Time{}, fmt.Errorf("%w: festival_friday %s is a %s", ErrInvalidConfig, c.FestivalFriday, d.Weekday())
	}
	return d, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate(_ context.Context) error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	loc, err := c.Location()
	if err != nil {
		return err
	}
	if _, err := c.Friday(loc); err != nil {
		return err
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("%w: row_height must be positive", ErrInvalidConfig)
	}
	if c.HeaderHeight < 0 {
		return fmt.Errorf("%w: header_height must not be negative", ErrInvalidConfig)
	}
	if c.ReloadCron != "" {
		if c.EventsFile == "" {
			return fmt.Errorf("%w: reload_cron requires events_file", ErrInvalidConfig)
		}
		if _, err := cron.ParseStandard(c.ReloadCron); err != nil {
			return fmt.Errorf("%w: reload_cron %q: %w", ErrInvalidConfig, c.ReloadCron, err)
		}
	}
	return nil
}

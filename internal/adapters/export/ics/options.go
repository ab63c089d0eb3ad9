package ics

import "time"

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithLocation sets the zone the festival runs in.
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithProductID overrides PRODID.
func WithProductID(id string) Option {
	return func(e *Exporter) {
		if id != "" {
			e.productID = id
		}
	}
}

// WithCalendarName overrides X-WR-CALNAME.
func WithCalendarName(name string) Option {
	return func(e *Exporter) {
		if name != "" {
			e.name = name
		}
	}
}

// WithClock sets the clock used for DTSTAMP.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

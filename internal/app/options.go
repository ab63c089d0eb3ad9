package service

import (
	"time"

	"github.com/okian/festgrid/internal/adapters/repository"
	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/zoom"
	"github.com/okian/festgrid/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the event store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithResolver sets the layout resolver.
func WithResolver(r *layout.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithPrefs sets the key-value store backing the zoom hint flag.
func WithPrefs(kv zoom.KV) Option {
	return func(s *Service) {
		s.prefs = kv
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the wall clock used for "now" lookups.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone the festival runs in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithFestivalFriday sets the calendar date of the festival Friday.
func WithFestivalFriday(day time.Time) Option {
	return func(s *Service) {
		if !day.IsZero() {
			s.friday = day
		}
	}
}

// WithEventsFile sets the YAML seed file loaded on Start and by reloads.
func WithEventsFile(path string) Option {
	return func(s *Service) {
		s.eventsFile = path
	}
}

// WithGeometry sets the base row and header height in px.
func WithGeometry(rowHeight, headerHeight float64) Option {
	return func(s *Service) {
		if rowHeight > 0 {
			s.rowHeight = rowHeight
		}
		if headerHeight >= 0 {
			s.headerHeight = headerHeight
		}
	}
}

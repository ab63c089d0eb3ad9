package repository

import "github.com/okian/festgrid/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator replaces the generator used for events stored without an id.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithEvents seeds the store.
func WithEvents(events []model.Event) Option {
	return func(s *MemoryStore) {
		s.seed = append(s.seed, events...)
	}
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/pkg/metrics"
)

// MemoryStore is an in-memory Store that keeps insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Event

	newID func() string
	seed  []model.Event
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store, optionally seeded with WithEvents.
func NewMemoryStore(opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		byID:  make(map[string]model.Event),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.seed) > 0 {
		if err := s.Replace(context.Background(), s.seed); err != nil {
			return nil, err
		}
		s.seed = nil
	}
	return s, nil
}

// List returns a copy of all events in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Get returns the event with id.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByType("not_found", "low")
		return model.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ev, nil
}

// Upsert inserts ev, or replaces the stored event with the same id in place.
func (s *MemoryStore) Upsert(_ context.Context, ev model.Event) (model.Event, error) {
	ev, err := s.normalize(ev)
	if err != nil {
		return model.Event{}, err
	}
	s.mu.Lock()
	s.putLocked(ev)
	n := len(s.order)
	s.mu.Unlock()

	metrics.UpdateStoredEvents(n)
	return ev, nil
}

// Delete removes the event with id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	n := len(s.order)
	s.mu.Unlock()

	metrics.UpdateStoredEvents(n)
	return nil
}

// Replace swaps the stored list for events. Nothing changes if any event is
// invalid. Duplicate ids keep the position of the first occurrence and the
// value of the last.
func (s *MemoryStore) Replace(_ context.Context, events []model.Event) error {
	normalized := make([]model.Event, 0, len(events))
	for i, ev := range events {
		ev, err := s.normalize(ev)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		normalized = append(normalized, ev)
	}

	s.mu.Lock()
	s.order = s.order[:0]
	s.byID = make(map[string]model.Event, len(normalized))
	for _, ev := range normalized {
		s.putLocked(ev)
	}
	n := len(s.order)
	s.mu.Unlock()

	metrics.UpdateStoredEvents(n)
	return nil
}

// Count returns the number of stored events.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *MemoryStore) putLocked(ev model.Event) {
	if _, exists := s.byID[ev.ID]; !exists {
		s.order = append(s.order, ev.ID)
	}
	s.byID[ev.ID] = ev
}

func (s *MemoryStore) normalize(ev model.Event) (model.Event, error) {
	ev.Title = strings.TrimSpace(ev.Title)
	if ev.Title == "" {
		return model.Event{}, fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	ev.ID = strings.TrimSpace(ev.ID)
	if ev.ID == "" {
		ev.ID = s.newID()
	}
	return ev, nil
}

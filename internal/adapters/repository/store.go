// Package repository holds the schedule's event store and the persisted
// preference file.
package repository

import (
	"context"

	"github.com/okian/festgrid/internal/domain/model"
)

// Store provides read/write access to the schedule's events.
type Store interface {
	// List returns all events in insertion order.
	List(ctx context.Context) ([]model.Event, error)

	// Get returns the event with id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Event, error)

	// Upsert inserts or replaces an event by id. An empty id is assigned.
	Upsert(ctx context.Context, ev model.Event) (model.Event, error)

	// Delete removes the event with id.
	// Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// Replace swaps the whole event list.
	Replace(ctx context.Context, events []model.Event) error

	// Count returns the number of stored events.
	Count(ctx context.Context) int
}

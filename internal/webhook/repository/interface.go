package repository

import (
	"context"

	"repo-pulse/internal/model"
)

// Repository is the composed interface for the webhook event store.
type Repository interface {
	EventRepository
}

// EventRepository defines all access methods for stored events. Writes store
// a deep copy and reads return deep copies ordered newest-first, so payloads
// held by callers never alias stored ones.
type EventRepository interface {
	// Add stores event unconditionally, evicting the oldest past capacity.
	Add(ctx context.Context, event model.Event)
	// Insert stores event unless its delivery id is already retained, in which
	// case the retained event is returned with duplicate set.
	Insert(ctx context.Context, event model.Event) (stored model.Event, duplicate bool)

	List(ctx context.Context) []model.Event
	ListEvents(ctx context.Context, opt ListEventsOptions) []model.Event
	FilterByType(ctx context.Context, eventType string) []model.Event
	FilterByRepository(ctx context.Context, repository string) []model.Event
	Recent(ctx context.Context, limit int) []model.Event

	Clear(ctx context.Context)
	Count(ctx context.Context) int
	Stats(ctx context.Context) map[string]int
	Capacity() int
}

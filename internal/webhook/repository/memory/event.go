package memory

import (
	"context"

	"repo-pulse/internal/model"
	repo "repo-pulse/internal/webhook/repository"
)

// Add stores event at the front, evicting the oldest one when full.
func (r *implRepository) Add(ctx context.Context, event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.push(ctx, event)
}

// Insert is Add with delivery id deduplication. Events without a delivery id
// are always stored.
func (r *implRepository) Insert(ctx context.Context, event model.Event) (model.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.DeliveryID != "" {
		if original, ok := r.byDelivery[event.DeliveryID]; ok {
			return original.Clone(), true
		}
	}

	r.push(ctx, event)
	return event, false
}

// push must be called with the write lock held.
func (r *implRepository) push(ctx context.Context, event model.Event) {
	event = event.Clone()
	if r.size == r.capacity {
		evicted := r.buf[r.head]
		if indexed, ok := r.byDelivery[evicted.DeliveryID]; ok && indexed.ID == evicted.ID {
			delete(r.byDelivery, evicted.DeliveryID)
		}
		r.l.Debugf(ctx, "webhook/repository/memory.push: evicted event %s (%s)", evicted.ID, evicted.Type)
	} else {
		r.size++
	}

	r.buf[r.head] = event
	r.head = (r.head + 1) % r.capacity
	if event.DeliveryID != "" {
		r.byDelivery[event.DeliveryID] = event
	}
}

// List returns a point-in-time copy of every stored event, newest first.
func (r *implRepository) List(ctx context.Context) []model.Event {
	return r.ListEvents(ctx, repo.ListEventsOptions{})
}

// ListEvents returns clones of the stored events matching opt, newest first.
// The result is never nil.
func (r *implRepository) ListEvents(ctx context.Context, opt repo.ListEventsOptions) []model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.size
	if opt.Limit > 0 && opt.Limit < n {
		n = opt.Limit
	}
	events := make([]model.Event, 0, n)

	for i := 0; i < r.size; i++ {
		if opt.Limit > 0 && len(events) == opt.Limit {
			break
		}
		e := r.buf[(r.head-1-i+r.capacity)%r.capacity]
		if opt.Type != "" && e.Type != opt.Type {
			continue
		}
		if opt.Repository != "" && e.Repository != opt.Repository {
			continue
		}
		events = append(events, e.Clone())
	}
	return events
}

func (r *implRepository) FilterByType(ctx context.Context, eventType string) []model.Event {
	return r.ListEvents(ctx, repo.ListEventsOptions{Type: eventType})
}

func (r *implRepository) FilterByRepository(ctx context.Context, repository string) []model.Event {
	return r.ListEvents(ctx, repo.ListEventsOptions{Repository: repository})
}

// Recent returns the newest limit events. A non-positive limit means
// repository.DefaultRecentLimit.
func (r *implRepository) Recent(ctx context.Context, limit int) []model.Event {
	if limit <= 0 {
		limit = repo.DefaultRecentLimit
	}
	return r.ListEvents(ctx, repo.ListEventsOptions{Limit: limit})
}

// Clear drops every event. Clearing an empty store is a no-op.
func (r *implRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf = make([]model.Event, r.capacity)
	r.head = 0
	r.size = 0
	r.byDelivery = make(map[string]model.Event)
}

func (r *implRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Stats returns the number of stored events per event type.
func (r *implRepository) Stats(ctx context.Context) map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]int)
	for i := 0; i < r.size; i++ {
		stats[r.buf[(r.head-1-i+r.capacity)%r.capacity].Type]++
	}
	return stats
}

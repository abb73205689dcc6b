package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-pulse/internal/model"
	repo "repo-pulse/internal/webhook/repository"
	"repo-pulse/pkg/log"
)

func newEvent(i int, eventType, repository, delivery string) model.Event {
	return model.Event{
		ID:         fmt.Sprintf("evt-%d", i),
		Type:       eventType,
		Repository: repository,
		Sender:     model.Unknown,
		DeliveryID: delivery,
		Payload:    map[string]any{"n": i},
	}
}

func ids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestNew_DefaultCapacity(t *testing.T) {
	r := New(log.NewNop(), 0)
	assert.Equal(t, DefaultCapacity, r.Capacity())
	assert.Equal(t, 5, New(log.NewNop(), 5).Capacity())
}

func TestAdd_NewestFirst(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 10)

	r.Add(ctx, newEvent(1, "push", "a/a", ""))
	r.Add(ctx, newEvent(2, "push", "a/a", ""))
	r.Add(ctx, newEvent(3, "push", "a/a", ""))

	assert.Equal(t, []string{"evt-3", "evt-2", "evt-1"}, ids(r.List(ctx)))
	assert.Equal(t, 3, r.Count(ctx))
}

func TestAdd_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), DefaultCapacity)

	for i := 1; i <= 250; i++ {
		r.Add(ctx, newEvent(i, "push", "a/a", fmt.Sprintf("d-%d", i)))
	}

	events := r.List(ctx)
	require.Len(t, events, DefaultCapacity)
	assert.Equal(t, "evt-250", events[0].ID)
	assert.Equal(t, "evt-51", events[len(events)-1].ID)

	got := ids(events)
	for i := 1; i <= 50; i++ {
		assert.NotContains(t, got, fmt.Sprintf("evt-%d", i))
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 3)
	r.Add(ctx, newEvent(1, "push", "a/a", ""))

	events := r.List(ctx)
	events[0].ID = "mutated"
	assert.Equal(t, "evt-1", r.List(ctx)[0].ID)
}

func TestPayloadIsolation(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 3)

	in := newEvent(1, "push", "a/a", "d-1")
	in.Payload["repository"] = map[string]any{"full_name": "a/a"}
	r.Insert(ctx, in)

	// mutating the caller's event after storing it
	in.Payload["n"] = "caller"

	listed := r.List(ctx)[0]
	listed.Payload["n"] = "reader"
	listed.Payload["repository"].(map[string]any)["full_name"] = "reader/x"

	dup, ok := r.Insert(ctx, newEvent(2, "push", "a/a", "d-1"))
	require.True(t, ok)
	dup.Payload["n"] = "dup"

	got := r.List(ctx)[0].Payload
	assert.Equal(t, 1, got["n"])
	assert.Equal(t, "a/a", got["repository"].(map[string]any)["full_name"])
}

func TestList_EmptyIsNotNil(t *testing.T) {
	r := New(log.NewNop(), 3)
	events := r.List(context.Background())
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestInsert_Dedupe(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 10)

	first, dup := r.Insert(ctx, newEvent(1, "push", "a/a", "d-1"))
	require.False(t, dup)
	assert.Equal(t, "evt-1", first.ID)

	stored, dup := r.Insert(ctx, newEvent(2, "push", "a/a", "d-1"))
	assert.True(t, dup)
	assert.Equal(t, "evt-1", stored.ID)
	assert.Equal(t, 1, r.Count(ctx))

	// empty delivery ids never collide
	_, dup = r.Insert(ctx, newEvent(3, "push", "a/a", ""))
	assert.False(t, dup)
	_, dup = r.Insert(ctx, newEvent(4, "push", "a/a", ""))
	assert.False(t, dup)
	assert.Equal(t, 3, r.Count(ctx))
}

func TestInsert_EvictedDeliveryCanBeStoredAgain(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 2)

	r.Insert(ctx, newEvent(1, "push", "a/a", "d-1"))
	r.Insert(ctx, newEvent(2, "push", "a/a", "d-2"))
	r.Insert(ctx, newEvent(3, "push", "a/a", "d-3")) // evicts d-1

	stored, dup := r.Insert(ctx, newEvent(4, "push", "a/a", "d-1"))
	assert.False(t, dup)
	assert.Equal(t, "evt-4", stored.ID)
	assert.Equal(t, []string{"evt-4", "evt-3"}, ids(r.List(ctx)))
}

func TestAdd_EvictionKeepsNewerIndexEntry(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 2)

	// Add bypasses dedupe, so d-1 is indexed to evt-2 after this
	r.Add(ctx, newEvent(1, "push", "a/a", "d-1"))
	r.Add(ctx, newEvent(2, "push", "a/a", "d-1"))
	r.Add(ctx, newEvent(3, "push", "a/a", "d-3")) // evicts evt-1

	stored, dup := r.Insert(ctx, newEvent(4, "push", "a/a", "d-1"))
	assert.True(t, dup)
	assert.Equal(t, "evt-2", stored.ID)
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 10)

	r.Add(ctx, newEvent(1, "push", "octo/app", ""))
	r.Add(ctx, newEvent(2, "issues", "octo/app", ""))
	r.Add(ctx, newEvent(3, "push", "octo/lib", ""))
	r.Add(ctx, newEvent(4, "star", "octo/lib", ""))

	assert.Equal(t, []string{"evt-3", "evt-1"}, ids(r.FilterByType(ctx, "push")))
	assert.Equal(t, []string{"evt-4", "evt-3"}, ids(r.FilterByRepository(ctx, "octo/lib")))
	assert.Empty(t, r.FilterByType(ctx, "release"))

	got := r.ListEvents(ctx, repo.ListEventsOptions{Type: "push", Repository: "octo/app"})
	assert.Equal(t, []string{"evt-1"}, ids(got))

	got = r.ListEvents(ctx, repo.ListEventsOptions{Limit: 2})
	assert.Equal(t, []string{"evt-4", "evt-3"}, ids(got))

	got = r.ListEvents(ctx, repo.ListEventsOptions{Type: "push", Limit: 1})
	assert.Equal(t, []string{"evt-3"}, ids(got))
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), DefaultCapacity)
	for i := 1; i <= 80; i++ {
		r.Add(ctx, newEvent(i, "push", "a/a", ""))
	}

	assert.Len(t, r.Recent(ctx, 0), repo.DefaultRecentLimit)
	assert.Len(t, r.Recent(ctx, -3), repo.DefaultRecentLimit)
	assert.Equal(t, []string{"evt-80", "evt-79"}, ids(r.Recent(ctx, 2)))
	assert.Len(t, r.Recent(ctx, 500), 80)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 3)

	r.Clear(ctx)
	assert.Zero(t, r.Count(ctx))

	for i := 1; i <= 5; i++ {
		r.Insert(ctx, newEvent(i, "push", "a/a", fmt.Sprintf("d-%d", i)))
	}
	r.Clear(ctx)
	assert.Zero(t, r.Count(ctx))
	assert.Empty(t, r.List(ctx))
	assert.Empty(t, r.Stats(ctx))

	// dedupe index is reset with the buffer
	_, dup := r.Insert(ctx, newEvent(6, "push", "a/a", "d-5"))
	assert.False(t, dup)
	assert.Equal(t, []string{"evt-6"}, ids(r.List(ctx)))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 3)

	r.Add(ctx, newEvent(1, "release", "a/a", ""))
	r.Add(ctx, newEvent(2, "push", "a/a", ""))
	r.Add(ctx, newEvent(3, "push", "a/a", ""))
	r.Add(ctx, newEvent(4, "issues", "a/a", "")) // evicts the release

	assert.Equal(t, map[string]int{"push": 2, "issues": 1}, r.Stats(ctx))
}

func TestConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	r := New(log.NewNop(), 100)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				n := w*50 + i
				r.Insert(ctx, newEvent(n, "push", "a/a", fmt.Sprintf("d-%d", n%120)))
				_ = r.List(ctx)
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, r.Count(ctx), 100)
	seen := map[string]bool{}
	for _, e := range r.List(ctx) {
		assert.False(t, seen[e.DeliveryID], "delivery %s stored twice", e.DeliveryID)
		seen[e.DeliveryID] = true
	}
}

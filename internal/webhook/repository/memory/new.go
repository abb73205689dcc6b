package memory

import (
	"sync"

	"repo-pulse/internal/model"
	"repo-pulse/internal/webhook/repository"
	"repo-pulse/pkg/log"
)

// DefaultCapacity is the number of events retained when none is configured.
const DefaultCapacity = 200

type implRepository struct {
	l log.Logger

	mu       sync.RWMutex
	buf      []model.Event
	head     int // next write position
	size     int
	capacity int

	byDelivery map[string]model.Event
}

// New creates an in-memory Repository holding at most capacity events.
// A non-positive capacity falls back to DefaultCapacity.
func New(l log.Logger, capacity int) repository.Repository {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &implRepository{
		l:          l,
		buf:        make([]model.Event, capacity),
		capacity:   capacity,
		byDelivery: make(map[string]model.Event),
	}
}

func (r *implRepository) Capacity() int {
	return r.capacity
}

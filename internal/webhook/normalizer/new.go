package normalizer

import (
	"time"

	"github.com/google/uuid"
)

// Normalizer turns raw deliveries into canonical events.
type Normalizer struct {
	summarizers map[string]Summarizer
	now         func() time.Time
	newID       func() string
}

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithSummarizer registers or replaces the summarizer for eventType.
func WithSummarizer(eventType string, fn Summarizer) Option {
	return func(n *Normalizer) {
		n.summarizers[eventType] = fn
	}
}

// WithClock overrides the ingestion clock.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// WithIDGenerator overrides event id generation.
func WithIDGenerator(newID func() string) Option {
	return func(n *Normalizer) {
		n.newID = newID
	}
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		summarizers: defaultSummarizers(),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

package webhook

import (
	"context"

	"repo-pulse/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Ingest verifies, normalizes and stores one delivery.
	Ingest(ctx context.Context, input IngestInput) (IngestOutput, error)

	// Query / admin
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Stats(ctx context.Context) (StatsOutput, error)
	Clear(ctx context.Context) error
}

// Publisher is notified of every newly stored event. Implementations must not block.
type Publisher interface {
	Publish(event model.Event)
}

// Recorder counts ingestion outcomes.
type Recorder interface {
	ObserveIngest(eventType, outcome string)
}

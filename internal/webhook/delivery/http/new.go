package http

import (
	"repo-pulse/internal/webhook"
	"repo-pulse/pkg/log"
)

// DefaultMaxPayloadBytes matches GitHub's 25 MB delivery cap.
const DefaultMaxPayloadBytes int64 = 25 << 20

type handler struct {
	l               log.Logger
	uc              webhook.UseCase
	maxPayloadBytes int64
}

// New creates a new HTTP handler for the webhook domain. A non-positive
// maxPayloadBytes falls back to DefaultMaxPayloadBytes.
func New(l log.Logger, uc webhook.UseCase, maxPayloadBytes int64) *handler {
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = DefaultMaxPayloadBytes
	}
	return &handler{
		l:               l,
		uc:              uc,
		maxPayloadBytes: maxPayloadBytes,
	}
}

package usecase

import (
	"repo-pulse/internal/webhook"
	"repo-pulse/internal/webhook/normalizer"
	"repo-pulse/internal/webhook/repository"
	"repo-pulse/pkg/log"
)

// implUseCase is the private implementation of webhook.UseCase.
type implUseCase struct {
	repo       repository.Repository
	normalizer *normalizer.Normalizer
	l          log.Logger
	cfg        webhook.Config
	guard      *guard

	publisher webhook.Publisher
	recorder  webhook.Recorder
}

// Option wires optional collaborators into the use case.
type Option func(*implUseCase)

// WithPublisher fans every newly stored event out to p.
func WithPublisher(p webhook.Publisher) Option {
	return func(uc *implUseCase) {
		uc.publisher = p
	}
}

// WithRecorder records every ingestion outcome on r.
func WithRecorder(r webhook.Recorder) Option {
	return func(uc *implUseCase) {
		uc.recorder = r
	}
}

// New creates a new webhook UseCase implementation.
func New(repo repository.Repository, n *normalizer.Normalizer, l log.Logger, cfg webhook.Config, opts ...Option) webhook.UseCase {
	uc := &implUseCase{
		repo:       repo,
		normalizer: n,
		l:          l,
		cfg:        cfg,
		guard:      newGuard(cfg.Security),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

package usecase

import (
	"context"

	"repo-pulse/internal/webhook"
	repo "repo-pulse/internal/webhook/repository"
)

// List returns stored events newest-first, narrowed by the input filters.
func (uc *implUseCase) List(ctx context.Context, input webhook.ListInput) (webhook.ListOutput, error) {
	events := uc.repo.ListEvents(ctx, repo.ListEventsOptions{
		Type:       input.Type,
		Repository: input.Repository,
		Limit:      input.Limit,
	})
	return webhook.ListOutput{
		Events: events,
		Total:  uc.repo.Count(ctx),
	}, nil
}

func (uc *implUseCase) Stats(ctx context.Context) (webhook.StatsOutput, error) {
	return webhook.StatsOutput{
		Count:    uc.repo.Count(ctx),
		Capacity: uc.repo.Capacity(),
		ByType:   uc.repo.Stats(ctx),
	}, nil
}

// Clear drops every stored event.
func (uc *implUseCase) Clear(ctx context.Context) error {
	n := uc.repo.Count(ctx)
	uc.repo.Clear(ctx)
	uc.l.Infof(ctx, "uc.Clear: removed %d events", n)
	return nil
}

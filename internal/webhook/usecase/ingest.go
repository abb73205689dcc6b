package usecase

import (
	"context"
	"fmt"

	"repo-pulse/internal/model"
	"repo-pulse/internal/webhook"
	"repo-pulse/pkg/signature"
)

const otherEventLabel = "other"

// Ingest runs one delivery through the gates in order: secret configured,
// source IP, rate limit, signature, event type, then normalization and
// storage. Nothing is stored unless every gate passes.
func (uc *implUseCase) Ingest(ctx context.Context, input webhook.IngestInput) (webhook.IngestOutput, error) {
	label := uc.metricLabel(input.EventType)

	if uc.cfg.Security.Secret == "" {
		uc.l.Errorf(ctx, "uc.Ingest: webhook secret not configured (event=%s delivery=%s)", input.EventType, input.DeliveryID)
		uc.observe(label, webhook.OutcomeRejectedConfig)
		return webhook.IngestOutput{}, webhook.ErrSecretNotConfigured
	}

	if !uc.guard.allowIP(input.ClientIP) {
		uc.l.Warnf(ctx, "uc.Ingest: ip %s not allowed (event=%s delivery=%s)", input.ClientIP, input.EventType, input.DeliveryID)
		uc.observe(label, webhook.OutcomeIPDenied)
		return webhook.IngestOutput{}, webhook.ErrIPNotAllowed
	}

	if !uc.guard.allowRate(input.ClientIP) {
		uc.l.Warnf(ctx, "uc.Ingest: rate limit exceeded for %s (event=%s delivery=%s)", input.ClientIP, input.EventType, input.DeliveryID)
		uc.observe(label, webhook.OutcomeRateLimited)
		return webhook.IngestOutput{}, webhook.ErrRateLimited
	}

	verified, err := uc.verify(ctx, input)
	if err != nil {
		uc.observe(label, webhook.OutcomeRejectedSignature)
		return webhook.IngestOutput{}, err
	}

	if input.EventType == "" {
		uc.l.Warnf(ctx, "uc.Ingest: missing event type (delivery=%s)", input.DeliveryID)
		uc.observe(label, webhook.OutcomeRejectedPayload)
		return webhook.IngestOutput{}, webhook.ErrMissingEventType
	}

	event, err := uc.normalizer.Normalize(input.EventType, input.Body, input.DeliveryID)
	if err != nil {
		uc.l.Warnf(ctx, "uc.Ingest Normalize: %v (event=%s delivery=%s)", err, input.EventType, input.DeliveryID)
		uc.observe(label, webhook.OutcomeRejectedPayload)
		return webhook.IngestOutput{}, fmt.Errorf("%w: %v", webhook.ErrInvalidPayload, err)
	}
	event.Verified = verified

	stored, duplicate := uc.store(ctx, event)
	if duplicate {
		uc.l.Infof(ctx, "uc.Ingest: duplicate delivery %s, keeping event %s", input.DeliveryID, stored.ID)
		uc.observe(label, webhook.OutcomeDuplicate)
		return webhook.IngestOutput{Event: stored, Duplicate: true}, nil
	}

	uc.l.Infof(ctx, "uc.Ingest: stored %s event %s from %s (delivery=%s verified=%t)",
		stored.Type, stored.ID, stored.Repository, stored.DeliveryID, stored.Verified)
	if uc.publisher != nil {
		uc.publisher.Publish(stored)
	}
	uc.observe(label, webhook.OutcomeStored)

	return webhook.IngestOutput{Event: stored}, nil
}

// verify checks the signature header. An unsigned delivery passes unverified
// unless signatures are required.
func (uc *implUseCase) verify(ctx context.Context, input webhook.IngestInput) (bool, error) {
	if input.Signature == "" {
		if uc.cfg.Security.RequireSignature {
			uc.l.Warnf(ctx, "uc.Ingest: missing signature (event=%s delivery=%s)", input.EventType, input.DeliveryID)
			return false, webhook.ErrMissingSignature
		}
		uc.l.Warnf(ctx, "uc.Ingest: unsigned delivery accepted (event=%s delivery=%s)", input.EventType, input.DeliveryID)
		return false, nil
	}

	if !signature.Verify(input.Body, input.Signature, uc.cfg.Security.Secret) {
		uc.l.Warnf(ctx, "uc.Ingest: invalid signature (event=%s delivery=%s)", input.EventType, input.DeliveryID)
		return false, webhook.ErrInvalidSignature
	}
	return true, nil
}

func (uc *implUseCase) store(ctx context.Context, event model.Event) (model.Event, bool) {
	if !uc.cfg.DedupeDeliveries {
		uc.repo.Add(ctx, event)
		return event, false
	}
	return uc.repo.Insert(ctx, event)
}

func (uc *implUseCase) observe(eventType, outcome string) {
	if uc.recorder != nil {
		uc.recorder.ObserveIngest(eventType, outcome)
	}
}

// metricLabel bounds label cardinality to the known event types.
func (uc *implUseCase) metricLabel(eventType string) string {
	if uc.normalizer.Supports(eventType) {
		return eventType
	}
	return otherEventLabel
}

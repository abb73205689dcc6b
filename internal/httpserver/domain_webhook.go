package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"repo-pulse/internal/middleware"
	"repo-pulse/internal/webhook"
	webhookHTTP "repo-pulse/internal/webhook/delivery/http"
	"repo-pulse/internal/webhook/delivery/stream"
	"repo-pulse/internal/webhook/normalizer"
	webhookRepo "repo-pulse/internal/webhook/repository/memory"
	webhookUC "repo-pulse/internal/webhook/usecase"
)

// setupWebhookDomain initializes the webhook domain and registers its routes.
func (srv *HTTPServer) setupWebhookDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// 1. Repository
	repo := webhookRepo.New(srv.l, srv.webhook.Capacity)
	srv.metrics.TrackStoreSize(func() float64 {
		return float64(repo.Count(context.Background()))
	})

	// 2. UseCase
	uc := webhookUC.New(repo, normalizer.New(), srv.l, webhook.Config{
		Security: webhook.SecurityConfig{
			Secret:           srv.webhook.Secret,
			RequireSignature: srv.webhook.RequireSignature,
			AllowedIPs:       srv.webhook.AllowedIPs,
			RateLimitPerMin:  srv.webhook.RateLimitPerMin,
		},
		DedupeDeliveries: srv.webhook.DedupeDeliveries,
	},
		webhookUC.WithPublisher(srv.hub),
		webhookUC.WithRecorder(srv.metrics),
	)

	// 3. Handlers
	h := webhookHTTP.New(srv.l, uc, srv.webhook.MaxPayloadBytes)
	sh := stream.NewHandler(srv.l, srv.hub)

	// 4. Routes: /api/webhook, /api/webhooks, /api/webhooks/stats, /api/webhooks/stream
	webhookHTTP.RegisterRoutes(api, h, mw)
	stream.RegisterRoutes(api, sh)

	if srv.webhook.Secret == "" {
		srv.l.Warnf(ctx, "Webhook secret not configured: deliveries will be rejected with 500")
	}
	if srv.webhook.AdminToken == "" {
		srv.l.Warnf(ctx, "Admin token not configured: DELETE /api/webhooks is open")
	}
	srv.l.Infof(ctx, "Webhook domain registered (capacity=%d dedupe=%t require_signature=%t)",
		repo.Capacity(), srv.webhook.DedupeDeliveries, srv.webhook.RequireSignature)
	return nil
}

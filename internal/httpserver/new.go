package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"repo-pulse/internal/webhook/delivery/stream"
	"repo-pulse/pkg/log"
	"repo-pulse/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Webhook domain
	webhook        WebhookConfig
	githubUsername string
	metrics        *metrics.Metrics
	hub            *stream.Hub
}

// WebhookConfig carries the ingestion settings into the webhook domain.
type WebhookConfig struct {
	Secret           string
	RequireSignature bool
	DedupeDeliveries bool
	Capacity         int
	MaxPayloadBytes  int64
	AllowedIPs       []string
	RateLimitPerMin  int
	AdminToken       string
	StreamBuffer     int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// TrustedProxies may set the client IP through X-Forwarded-For.
	// Empty trusts none, so the IP gates see the socket peer.
	TrustedProxies []string

	Webhook        WebhookConfig
	GitHubUsername string

	// Metrics is optional; a private registry is created when nil.
	Metrics *metrics.Metrics
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		webhook:        cfg.Webhook,
		githubUsername: cfg.GitHubUsername,
		metrics:        cfg.Metrics,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	if srv.metrics == nil {
		srv.metrics = metrics.New()
	}
	srv.hub = stream.NewHub(logger, cfg.Webhook.StreamBuffer)

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"repo-pulse/config"
	_ "repo-pulse/docs" // Swagger docs
	"repo-pulse/internal/httpserver"
	"repo-pulse/pkg/log"
)

const defaultNgrokAPI = "http://ngrok:4040"

func newServeCmd() *cobra.Command {
	var ngrokAPI string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), ngrokAPI)
		},
	}
	cmd.Flags().StringVar(&ngrokAPI, "ngrok-api", defaultNgrokAPI, "ngrok local API used to discover the public URL (empty disables)")
	return cmd
}

func serve(parent context.Context, ngrokAPI string) error {
	if parent == nil {
		parent = context.Background()
	}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting repo-pulse...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		Environment:    cfg.Environment.Name,
		GitHubUsername: cfg.GitHub.Username,
		Webhook: httpserver.WebhookConfig{
			Secret:           cfg.Webhook.Secret,
			RequireSignature: cfg.Webhook.RequireSignature,
			DedupeDeliveries: cfg.Webhook.DedupeDeliveries,
			Capacity:         cfg.Webhook.Capacity,
			MaxPayloadBytes:  cfg.Webhook.MaxPayloadBytes,
			AllowedIPs:       cfg.Webhook.AllowedIPs,
			RateLimitPerMin:  cfg.Webhook.RateLimitPerMin,
			AdminToken:       cfg.Webhook.AdminToken,
			StreamBuffer:     cfg.Webhook.StreamBuffer,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return err
	}

	// 4. Payload URL to register on GitHub: configured, or discovered from ngrok
	go announcePayloadURL(ctx, logger, cfg.Webhook.PublicURL, ngrokAPI)

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return err
	}

	logger.Info(ctx, "Server stopped gracefully")
	return nil
}

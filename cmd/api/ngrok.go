package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"repo-pulse/pkg/log"
)

const (
	payloadPath        = "/api/webhook"
	ngrokMaxAttempts   = 10
	ngrokRetryInterval = 3 * time.Second
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// announcePayloadURL logs the URL to paste into the GitHub webhook settings.
func announcePayloadURL(ctx context.Context, logger log.Logger, publicURL, ngrokAPI string) {
	if publicURL == "" && ngrokAPI != "" {
		detected, err := detectNgrokURL(ctx, ngrokAPI, ngrokRetryInterval)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", detected)
		publicURL = detected
	}
	if publicURL == "" {
		logger.Info(ctx, "No public URL configured; set webhook.public_url to print the GitHub payload URL")
		return
	}
	logger.Infof(ctx, "GitHub payload URL: %s%s (content type: application/json)", publicURL, payloadPath)
}

// detectNgrokURL queries the ngrok local API and returns the first HTTPS tunnel URL.
// It retries while ngrok is starting up.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string, interval time.Duration) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= ngrokMaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(interval):
			}
		}

		tunnels, err := fetchTunnels(ctx, client, url)
		if err != nil {
			lastErr = err
			continue
		}

		// Prefer HTTPS tunnels
		for _, t := range tunnels.Tunnels {
			if t.Proto == "https" {
				return t.PublicURL, nil
			}
		}

		// Fallback: any tunnel
		if len(tunnels.Tunnels) > 0 {
			return tunnels.Tunnels[0].PublicURL, nil
		}
		lastErr = fmt.Errorf("ngrok has no active tunnels")
	}

	return "", fmt.Errorf("ngrok not ready after %d attempts: %w", ngrokMaxAttempts, lastErr)
}

func fetchTunnels(ctx context.Context, client *http.Client, url string) (ngrokTunnelsResponse, error) {
	var tunnels ngrokTunnelsResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return tunnels, fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return tunnels, fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return tunnels, fmt.Errorf("failed to decode ngrok API response: %w", err)
	}
	return tunnels, nil
}

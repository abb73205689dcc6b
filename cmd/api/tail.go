package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// newTailCmd follows the live event stream of a running server.
func newTailCmd() *cobra.Command {
	var (
		serverURL string
		events    []string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print events from the live stream as they are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := tail(ctx, serverURL, events, cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "ws://localhost:8080/api/webhooks/stream", "Stream URL")
	cmd.Flags().StringArrayVar(&events, "event", nil, "Only print these event types (repeatable)")
	return cmd
}

type subscribeMessage struct {
	Type   string   `json:"type"`
	Events []string `json:"events"`
}

func tail(ctx context.Context, serverURL string, events []string, out io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", serverURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	if len(events) > 0 {
		if err := conn.WriteJSON(subscribeMessage{Type: "subscribe", Events: events}); err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var evt struct {
			ID         string `json:"id"`
			Type       string `json:"type"`
			Repository string `json:"repository"`
			Sender     string `json:"sender"`
			Timestamp  string `json:"timestamp"`
			Verified   bool   `json:"verified"`
		}
		if err := json.Unmarshal(data, &evt); err != nil {
			continue
		}
		fmt.Fprintf(out, "%s  %-28s %-30s by %s (verified=%t) %s\n",
			evt.Timestamp, evt.Type, evt.Repository, evt.Sender, evt.Verified, evt.ID)
	}
}

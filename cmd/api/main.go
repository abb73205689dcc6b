package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// @title       repo-pulse API
// @description GitHub webhook receiver: verifies, normalizes and serves repository events.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:          "repo-pulse",
		Short:        "Receive, verify and browse GitHub webhook events",
		SilenceUsage: true,
		// Serving is the default action.
		RunE: serveCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd, newSignCmd(), newTailCmd())
	return rootCmd
}

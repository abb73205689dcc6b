package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"repo-pulse/pkg/signature"
)

// newSignCmd prints the X-Hub-Signature-256 value for a payload, which is
// handy for replaying deliveries with curl.
func newSignCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Compute the X-Hub-Signature-256 header for a payload (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("WEBHOOK_SECRET")
			}
			if secret == "" {
				return errors.New("a secret is required: pass --secret or set WEBHOOK_SECRET")
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			body, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), signature.Sign(body, secret))
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Webhook secret (defaults to $WEBHOOK_SECRET)")
	return cmd
}

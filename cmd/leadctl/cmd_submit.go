package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/launch-watch/internal/capture"
)

var submitFlags struct {
	name  string
	email string
	phone string
	role  string
	terms bool
}

// submitCmd posts a single lead
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit one lead to the append endpoint",
	Long: `Submit builds a lead the same way the landing page form does and posts it.

Without an endpoint the submission is simulated and reported as such.
The command fails when the endpoint rejects the lead or cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		client := capture.NewClient(capture.ClientConfig{
			EndpointURL:    endpoint,
			FallbackDelay:  cfg.Capture.FallbackDelay(),
			RequestTimeout: cfg.Capture.RequestTimeout(),
			Logger:         logger,
		})
		form := capture.Form{
			FullName: submitFlags.name,
			Email:    submitFlags.email,
			Phone:    submitFlags.phone,
			Role:     submitFlags.role,
			Terms:    submitFlags.terms,
		}
		return runSubmit(ctx, cmd.OutOrStdout(), client, form, time.Now())
	},
}

func runSubmit(ctx context.Context, out io.Writer, submitter capture.Submitter, form capture.Form, now time.Time) error {
	lead := form.Lead(now)
	result := submitter.Submit(ctx, lead)
	switch result.Outcome {
	case capture.OutcomeDelivered, capture.OutcomeSimulated:
		fmt.Fprintf(out, "%s %s <%s>\n", result.Outcome, lead.FullName, lead.Email)
		return nil
	default:
		return fmt.Errorf("lead %s: %w", result.Outcome, result.Err)
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/launch-watch/internal/capture"
)

// probeCmd checks the endpoint is the lead handler
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "GET the append endpoint and print its reply",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		client := capture.NewClient(capture.ClientConfig{
			EndpointURL:    endpoint,
			RequestTimeout: cfg.Capture.RequestTimeout(),
			Logger:         logger,
		})
		text, err := client.Probe(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

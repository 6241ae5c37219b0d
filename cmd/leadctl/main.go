package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/launch-watch/internal/config"
)

var (
	verbose  bool
	endpoint string
	timeout  time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "leadctl",
	Short: "Operate the NCR Launch Watch lead pipeline",
	Long: `leadctl talks to the lead append endpoint and the sheet behind it.

  submit - post one lead through the capture client
  probe  - GET the endpoint and print its identification text
  export - dump the configured sheet as CSV`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{"stderr"}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if endpoint == "" {
			endpoint = cfg.Capture.EndpointURL
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Append endpoint URL (default: CAPTURE_ENDPOINT_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	submitCmd.Flags().StringVar(&submitFlags.name, "name", "", "Full name")
	submitCmd.Flags().StringVar(&submitFlags.email, "email", "", "Email address")
	submitCmd.Flags().StringVar(&submitFlags.phone, "phone", "", "Phone number")
	submitCmd.Flags().StringVar(&submitFlags.role, "role", "", "Role")
	submitCmd.Flags().BoolVar(&submitFlags.terms, "terms", false, "Terms accepted")

	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "Maximum rows to export (0 exports all)")
	exportCmd.Flags().BoolVar(&exportNoHeader, "no-header", false, "Omit the header row")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

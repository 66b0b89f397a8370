package cmd

import (
	"context"
	"time"

	"github.com/maxkimambo/dispatch/internal/logger"
	"github.com/maxkimambo/dispatch/internal/telemetry"
	"github.com/spf13/cobra"
)

var version = "v0.1.0"

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	debug      bool
	verbose    bool
	jsonLogs   bool
	quiet      bool
	trace      bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run two dependent calls in the background and present each result on the main context",
		Long: `dispatch launches a unit of work on a background context, performs two dependent
pseudo-network calls with simulated latency, and hops to a single UI-affine main
context after each call to present its result as a toast.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Setup(opts.verbose || opts.debug, opts.jsonLogs, opts.quiet)
			if opts.debug {
				logger.Op.Debug("Debug logging enabled")
			}
			return telemetry.Init(cmd.Context(), opts.trace || telemetry.EnabledFromEnv(), version, cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			telemetry.Shutdown(ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&opts.jsonLogs, "json", false, "Output logs in JSON format")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress non-error output")
	flags.BoolVar(&opts.trace, "trace", false, "Write OpenTelemetry spans and metrics to stderr")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newPlanCmd())

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

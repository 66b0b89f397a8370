package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/maxkimambo/dispatch/internal/api"
	"github.com/maxkimambo/dispatch/internal/config"
	"github.com/maxkimambo/dispatch/internal/dispatcher"
	apperrors "github.com/maxkimambo/dispatch/internal/errors"
	"github.com/maxkimambo/dispatch/internal/logger"
	"github.com/maxkimambo/dispatch/internal/presenter"
	"github.com/maxkimambo/dispatch/internal/progress"
	"github.com/maxkimambo/dispatch/internal/runner"
	"github.com/maxkimambo/dispatch/internal/ui"
	"github.com/spf13/cobra"
)

type runOptions struct {
	latency       time.Duration
	toast         string
	mainQueueSize int
	ioParallelism int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the dependent steps and present both results",
		Long: `Run launches the step chain on the background context:

  1. call API 1 (simulated latency)          -> "Result 1"
  2. hop to main, toast "Result 1", hop back
  3. call API 2 with "Result 1" (latency)    -> "Result 2"
  4. hop to main, toast "Result 2", hop back

The main context is driven on the process's main goroutine and stops once the
background work has finished and every queued presentation has run.

EXAMPLES:
# Defaults: three seconds per call, long toasts
dispatch run

# Fast run with every context hop logged
dispatch run --latency 200ms --toast short --debug
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := createRunConfig(cmd, root.configPath, opts)
			if err != nil {
				return err
			}
			return runDependentSteps(cmd, cfg, root.quiet)
		},
	}

	runCmd.Flags().DurationVar(&opts.latency, "latency", config.DefaultLatency, "Simulated latency of each API call")
	runCmd.Flags().StringVar(&opts.toast, "toast", config.DefaultToast, "Toast length: short or long")
	runCmd.Flags().IntVar(&opts.mainQueueSize, "main-queue-size", config.DefaultMainQueueSize, "Pending blocks the main looper can hold")
	runCmd.Flags().IntVar(&opts.ioParallelism, "io-parallelism", config.DefaultIOParallelism, "Maximum concurrent background jobs")

	return runCmd
}

// createRunConfig layers explicitly set flags over the config file and environment
func createRunConfig(cmd *cobra.Command, configPath string, opts *runOptions) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("latency") {
		cfg.Latency = opts.latency
	}
	if flags.Changed("toast") {
		cfg.Toast = strings.ToLower(strings.TrimSpace(opts.toast))
	}
	if flags.Changed("main-queue-size") {
		cfg.MainQueueSize = opts.mainQueueSize
	}
	if flags.Changed("io-parallelism") {
		cfg.IOParallelism = opts.ioParallelism
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDependentSteps(cmd *cobra.Command, cfg *config.Config, quiet bool) error {
	toast, err := presenter.ParseDuration(cfg.Toast)
	if err != nil {
		return apperrors.NewToastLengthError(cfg.Toast).WithOriginalError(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	main := dispatcher.NewMain(cfg.MainQueueSize)
	r := runner.New(
		api.NewClient(cfg.Latency),
		main,
		presenter.NewToaster(),
		runner.WithToastLength(toast),
		runner.WithIOParallelism(cfg.IOParallelism),
	)

	started := time.Now()
	logger.User.Startingf("Launching dependent steps (%s per call)", cfg.Latency)

	job := r.RunDependentSteps(ctx)
	go func() {
		<-job.Done()
		main.Quit()
	}()

	// This goroutine becomes the main context until the job is done
	loopErr := main.Loop(ctx)
	if err := job.Wait(); err != nil {
		logger.User.Errorf("Run failed: %s", apperrors.DisplayErrorSummary(err))
		return apperrors.NewRunError(err)
	}
	if loopErr != nil {
		return apperrors.NewRunError(loopErr)
	}

	elapsed := progress.FormatDuration(time.Since(started))
	logger.User.Successf("Both results presented in %s", elapsed)
	if !quiet {
		result1, _ := job.Result(runner.KeyResult1)
		result2, _ := job.Result(runner.KeyResult2)
		fmt.Fprintln(cmd.OutOrStdout(), ui.Box(ui.Success, "Dependent steps complete",
			fmt.Sprintf("%s: %s", runner.KeyResult1, result1),
			fmt.Sprintf("%s: %s", runner.KeyResult2, result2),
			fmt.Sprintf("elapsed: %s", elapsed),
		))
	}
	return nil
}

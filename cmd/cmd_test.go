package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxkimambo/dispatch/internal/config"
	apperrors "github.com/maxkimambo/dispatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(ctx context.Context, args ...string) (string, error) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestPlanPrintsExecutionOrder(t *testing.T) {
	out, err := executeRoot(context.Background(), "plan")
	require.NoError(t, err)

	assert.Contains(t, out, "Workflow dependent-steps:")
	first := bytes.Index([]byte(out), []byte("fetch-result-1"))
	second := bytes.Index([]byte(out), []byte("show-result-1"))
	third := bytes.Index([]byte(out), []byte("fetch-result-2"))
	fourth := bytes.Index([]byte(out), []byte("show-result-2"))
	require.True(t, first >= 0 && second > first && third > second && fourth > third, out)
	assert.Contains(t, out, "After")
}

func TestRunCompletesWithoutLatency(t *testing.T) {
	out, err := executeRoot(context.Background(), "run", "--latency", "0s", "--toast", "short")
	require.NoError(t, err)

	assert.Contains(t, out, "Dependent steps complete")
	assert.Contains(t, out, "result-1: Result 1")
	assert.Contains(t, out, "result-2: Result 2")
}

func TestRunQuietSkipsSummary(t *testing.T) {
	out, err := executeRoot(context.Background(), "run", "--latency", "0s", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"negative latency", []string{"run", "--latency", "-1s"}, "VALIDATION-" + apperrors.CodeValidationLatency},
		{"unknown toast length", []string{"run", "--toast", "medium"}, "VALIDATION-" + apperrors.CodeValidationToast},
		{"zero queue", []string{"run", "--main-queue-size", "0"}, "VALIDATION-" + apperrors.CodeValidationLimits},
		{"zero parallelism", []string{"run", "--io-parallelism", "0"}, "VALIDATION-" + apperrors.CodeValidationLimits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(context.Background(), tt.args...)
			require.Error(t, err)
			assert.True(t, apperrors.IsUserError(err))
			assert.Equal(t, tt.code, apperrors.GetErrorCode(err))
		})
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executeRoot(ctx, "run", "--latency", "1h")
	require.Error(t, err)
	assert.Equal(t, "DISPATCH-"+apperrors.CodeDispatchRun, apperrors.GetErrorCode(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCreateRunConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DISPATCH_LATENCY", "5s")
	t.Setenv("DISPATCH_TOAST", "short")

	root := newRootCmd()
	runCmd, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, runCmd.ParseFlags([]string{"--latency", "250ms"}))

	opts := &runOptions{latency: 250 * time.Millisecond}
	cfg, err := createRunConfig(runCmd, "", opts)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Latency)
	assert.Equal(t, "short", cfg.Toast)
	assert.Equal(t, config.DefaultMainQueueSize, cfg.MainQueueSize)
}

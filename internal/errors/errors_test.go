package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewLatencyError(-time.Second)

	msg := err.Error()
	assert.Contains(t, msg, "VALIDATION-002: Invalid latency '-1s'")
	assert.Contains(t, msg, "Operation: Flag validation")
	assert.Contains(t, msg, "latency: -1s")
	assert.Contains(t, msg, "1. Use a non-negative Go duration")
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewRunError(context.Canceled)
	assert.True(t, stderrors.Is(err, context.Canceled))

	wrapped := fmt.Errorf("run: %w", err)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorCategoryDispatch, appErr.Category)
}

func TestIsUserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", NewToastLengthError("medium"), true},
		{"configuration", NewConfigReadError("x.yaml", stderrors.New("nope")), true},
		{"dispatch", NewRunError(stderrors.New("looper quit")), false},
		{"plain", stderrors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUserError(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "VALIDATION-004", GetErrorCode(NewLimitError("main_queue_size", 0)))
	assert.Equal(t, "CONFIGURATION-002", GetErrorCode(NewConfigParseError("latency", stderrors.New("bad"))))
	assert.Equal(t, "UNKNOWN", GetErrorCode(stderrors.New("plain")))
}

func TestFormatForCLI(t *testing.T) {
	out := FormatForCLI(NewToastLengthError("medium"))
	assert.Contains(t, out, "Validation Error [VALIDATION-003]")
	assert.Contains(t, out, "Details:\n  toast: medium\n")
	assert.Contains(t, out, "How to resolve:\n  1. Use 'short' or 'long'\n")

	assert.Equal(t, "\nError: boom\n", FormatForCLI(stderrors.New("boom")))
}

func TestDisplayErrorSummary(t *testing.T) {
	assert.Equal(t, "VALIDATION-003: Invalid toast length 'x'", DisplayErrorSummary(NewToastLengthError("x")))

	long := stderrors.New(fmt.Sprintf("%0120d", 0))
	summary := DisplayErrorSummary(long)
	assert.Len(t, summary, 100)
	assert.True(t, len(summary) == 100 && summary[97:] == "...")
}

package errors

import (
	"fmt"
	"time"
)

const (
	CodeValidationInput   = "001"
	CodeValidationLatency = "002"
	CodeValidationToast   = "003"
	CodeValidationLimits  = "004"

	CodeConfigRead  = "001"
	CodeConfigParse = "002"

	CodeDispatchRun = "001"
)

// NewLatencyError reports a negative simulated latency
func NewLatencyError(latency time.Duration) *AppError {
	return NewValidationError(CodeValidationLatency,
		fmt.Sprintf("Invalid latency '%s'", latency),
		"Flag validation").
		WithContext("latency", latency.String()).
		WithTroubleshooting(
			"Use a non-negative Go duration such as '3s' or '250ms'",
			"Use '0s' to skip the simulated network delay entirely",
		)
}

// NewToastLengthError reports an unknown toast length
func NewToastLengthError(value string) *AppError {
	return NewValidationError(CodeValidationToast,
		fmt.Sprintf("Invalid toast length '%s'", value),
		"Flag validation").
		WithContext("toast", value).
		WithTroubleshooting("Use 'short' or 'long'")
}

// NewLimitError reports a non-positive queue size or parallelism
func NewLimitError(name string, value int) *AppError {
	return NewValidationError(CodeValidationLimits,
		fmt.Sprintf("Invalid %s '%d'", name, value),
		"Configuration validation").
		WithContext(name, value).
		WithTroubleshooting(fmt.Sprintf("Set %s to a value of at least 1", name))
}

// NewConfigReadError wraps a failure to read the config file
func NewConfigReadError(path string, originalErr error) *AppError {
	return NewConfigurationError(CodeConfigRead,
		fmt.Sprintf("Failed to read config file '%s'", path),
		"Configuration loading").
		WithContext("path", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Check that the file exists and is readable",
			"Check that the file is valid YAML",
		)
}

// NewConfigParseError wraps a failure to decode config values
func NewConfigParseError(key string, originalErr error) *AppError {
	return NewConfigurationError(CodeConfigParse,
		fmt.Sprintf("Failed to parse config key '%s'", key),
		"Configuration loading").
		WithContext("key", key).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Durations use Go syntax, e.g. '3s', '1m30s'",
			"Queue size and parallelism are whole numbers, e.g. '16'",
		)
}

// NewRunError wraps a failure of the background job or the main looper
func NewRunError(originalErr error) *AppError {
	return NewDispatchError(CodeDispatchRun, "Dependent steps did not complete", "Run").
		WithOriginalError(originalErr).
		WithTroubleshooting("Re-run with --debug to see every context hop")
}

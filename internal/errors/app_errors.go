package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the category of error
type ErrorCategory string

const (
	// ErrorCategoryValidation represents invalid flags or arguments
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	// ErrorCategoryConfiguration represents config file or environment problems
	ErrorCategoryConfiguration ErrorCategory = "CONFIGURATION"
	// ErrorCategoryDispatch represents execution context failures
	ErrorCategoryDispatch ErrorCategory = "DISPATCH"
)

// AppError is a structured error with context and troubleshooting information
type AppError struct {
	Category        ErrorCategory
	Code            string
	Message         string
	Operation       string
	Context         map[string]interface{}
	Troubleshooting []string
	OriginalError   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s-%s: %s", e.Category, e.Code, e.Message))

	if e.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nOperation: %s", e.Operation))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:")
		for _, key := range e.contextKeys() {
			sb.WriteString(fmt.Sprintf("\n  %s: %v", key, e.Context[key]))
		}
	}

	if len(e.Troubleshooting) > 0 {
		sb.WriteString("\nTroubleshooting:")
		for i, step := range e.Troubleshooting {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	if e.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nUnderlying error: %v", e.OriginalError))
	}

	return sb.String()
}

// Unwrap returns the original error for error chain compatibility
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

func (e *AppError) contextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewAppError creates a new error with the specified parameters
func NewAppError(category ErrorCategory, code, message, operation string) *AppError {
	return &AppError{
		Category:        category,
		Code:            code,
		Message:         message,
		Operation:       operation,
		Context:         make(map[string]interface{}),
		Troubleshooting: []string{},
	}
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	e.Context[key] = value
	return e
}

// WithTroubleshooting adds troubleshooting steps to the error
func (e *AppError) WithTroubleshooting(steps ...string) *AppError {
	e.Troubleshooting = append(e.Troubleshooting, steps...)
	return e
}

// WithOriginalError adds the original error
func (e *AppError) WithOriginalError(err error) *AppError {
	e.OriginalError = err
	return e
}

// NewValidationError creates a new validation error
func NewValidationError(code, message, operation string) *AppError {
	return NewAppError(ErrorCategoryValidation, code, message, operation)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code, message, operation string) *AppError {
	return NewAppError(ErrorCategoryConfiguration, code, message, operation)
}

// NewDispatchError creates a new dispatch error
func NewDispatchError(code, message, operation string) *AppError {
	return NewAppError(ErrorCategoryDispatch, code, message, operation)
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

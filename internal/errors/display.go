package errors

import (
	"fmt"
	"strings"
)

// DisplayErrorSummary provides a one-line summary of the error for logs
func DisplayErrorSummary(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return fmt.Sprintf("%s-%s: %s", appErr.Category, appErr.Code, appErr.Message)
	}

	errStr := err.Error()
	if len(errStr) > 100 {
		return errStr[:97] + "..."
	}
	return errStr
}

// FormatForCLI formats an error for command-line display
func FormatForCLI(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return fmt.Sprintf("\nError: %v\n", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n%s Error [%s-%s]\n", categoryLabel(appErr.Category), appErr.Category, appErr.Code))
	sb.WriteString(fmt.Sprintf("  %s\n", appErr.Message))

	if appErr.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nFailed Operation: %s\n", appErr.Operation))
	}

	if len(appErr.Context) > 0 {
		sb.WriteString("\nDetails:\n")
		for _, key := range appErr.contextKeys() {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", key, appErr.Context[key]))
		}
	}

	if len(appErr.Troubleshooting) > 0 {
		sb.WriteString("\nHow to resolve:\n")
		for i, step := range appErr.Troubleshooting {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	if appErr.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nTechnical details: %v\n", appErr.OriginalError))
	}

	return sb.String()
}

// IsUserError reports whether the error comes from user input or configuration
func IsUserError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Category == ErrorCategoryValidation ||
			appErr.Category == ErrorCategoryConfiguration
	}
	return false
}

// GetErrorCode extracts the error code for reporting
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return fmt.Sprintf("%s-%s", appErr.Category, appErr.Code)
	}
	return "UNKNOWN"
}

func categoryLabel(c ErrorCategory) string {
	switch c {
	case ErrorCategoryValidation:
		return "Validation"
	case ErrorCategoryConfiguration:
		return "Configuration"
	case ErrorCategoryDispatch:
		return "Dispatch"
	default:
		return string(c)
	}
}

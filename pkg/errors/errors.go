// Package errors provides custom error types for the application.
// It defines domain-specific errors with error codes for better error handling
// and retry classification.
package errors

import (
	"fmt"
)

// ErrorCode represents application error codes
type ErrorCode string

// Error codes for different error categories
const (
	// General errors (1xxx)
	ErrCodeInternal   ErrorCode = "E1000"
	ErrCodeValidation ErrorCode = "E1001"
	ErrCodeNotFound   ErrorCode = "E1002"

	// Git provider errors (2xxx)
	ErrCodeProviderAuth        ErrorCode = "E2001"
	ErrCodeProviderRequest     ErrorCode = "E2002"
	ErrCodeProviderUnavailable ErrorCode = "E2003"
	ErrCodeProviderRateLimit   ErrorCode = "E2004"

	// Agent errors (3xxx)
	ErrCodeAgentNotFound    ErrorCode = "E3001"
	ErrCodeAgentUnavailable ErrorCode = "E3002"
	ErrCodeAgentTimeout     ErrorCode = "E3003"
	ErrCodeAgentResponse    ErrorCode = "E3004"

	// Review errors (4xxx)
	ErrCodeDiffTooLarge ErrorCode = "E4001"
	ErrCodeDiffMissing  ErrorCode = "E4002"
	ErrCodeReviewFailed ErrorCode = "E4003"

	// Tracker errors (5xxx)
	ErrCodeTrackerAuth    ErrorCode = "E5001"
	ErrCodeTrackerRequest ErrorCode = "E5002"
	ErrCodeTrackerTicket  ErrorCode = "E5003"

	// Configuration errors (6xxx)
	ErrCodeConfigNotFound ErrorCode = "E6001"
	ErrCodeConfigInvalid  ErrorCode = "E6002"
	ErrCodeConfigParse    ErrorCode = "E6003"
	ErrCodeConfigMissing  ErrorCode = "E6004"
)

// Exit codes for fatal run failures
const (
	// ExitCodeConfigValidation indicates configuration validation failure
	// (e.g., missing required environment variables)
	ExitCodeConfigValidation = 2

	// ExitCodeReviewFailed indicates the review pipeline failed
	ExitCodeReviewFailed = 1
)

// AppError represents an application-level error with code and context
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the operation that produced the error is worth
// retrying. Transient transport and availability failures are retryable;
// validation, auth, and parse failures are not.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case ErrCodeProviderRequest, ErrCodeProviderUnavailable, ErrCodeProviderRateLimit,
		ErrCodeAgentUnavailable, ErrCodeAgentTimeout,
		ErrCodeTrackerRequest:
		return true
	default:
		return false
	}
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Common error constructors for convenience

// ErrInternal creates an internal error
func ErrInternal(message string, err error) *AppError {
	return Wrap(ErrCodeInternal, message, err)
}

// ErrValidation creates a validation error
func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ErrNotFound creates a not found error
func ErrNotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError attempts to convert an error to AppError
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

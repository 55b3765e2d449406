// Package errors provides unified error handling across the prompt-loom system.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the foundation for error handling across the application. It
// standardizes error representation, categorization, and handling so that the
// storage, media, and batch layers report failures the same way.
//
// KEY RESPONSIBILITIES:
// - Define standardized error codes and categories for consistent error identification
// - Provide structured error types (AppError) with severity levels and context
// - Enable interface-specific error formatting while maintaining consistent core error data
// - Classify which failures are retryable (transient filesystem conditions)
//
// INTEGRATION POINTS:
// - internal/storage: save/load/export failures are reported as Parse, MissingField, and Write errors
// - internal/batch: out-of-range list operations return Bounds errors (no-op policy)
// - internal/media: a recorded default image missing from its folder yields NotFound
// - internal/service: service operations wrap lower-level failures before they reach the UI
// - internal/ui/model.go: TUIErrorHandler renders AppErrors into the status bar
// - main.go: CLIErrorHandler formats startup errors for the terminal
//
// USAGE PATTERNS:
// - Create errors: use constructor functions like ParseError(), WriteError()
// - Wrap errors: use Wrap() to add context to existing errors
// - Handle errors: use the handler for the active interface (CLI before the
//   program starts, TUI inside it)
// - Check types: use IsAppError(), GetAppError(), and HasCode() for type-safe handling
//
// FUTURE DEVELOPMENT:
// - New error codes should be added to the const block with appropriate categorization
// - New error categories should include corresponding severity and retry logic
// - Interface-specific handlers should be added to handlers.go
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Template file errors
	ErrCodeParse        ErrorCode = "PARSE_ERROR"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	ErrCodeWrite        ErrorCode = "WRITE_ERROR"

	// Sequence errors
	ErrCodeBounds ErrorCode = "BOUNDS_ERROR"

	// Media errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// General errors
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryStorage    ErrorCategory = "storage"
	CategoryBatch      ErrorCategory = "batch"
	CategoryMedia      ErrorCategory = "media"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Cause:     err,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeMissingField, ErrCodeInvalidInput:
		return CategoryValidation, SeverityWarning

	case ErrCodeParse:
		return CategoryStorage, SeverityWarning
	case ErrCodeWrite:
		return CategoryStorage, SeverityError

	// Bounds violations follow the no-op policy and are never surfaced
	// to the user, so they rank below warnings.
	case ErrCodeBounds:
		return CategoryBatch, SeverityInfo

	case ErrCodeNotFound:
		return CategoryMedia, SeverityInfo

	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// isRetryable determines if an error is retryable based on its code
func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeWrite:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Common error constructors for frequently used errors

// ParseError reports a template file whose contents are not valid JSON.
func ParseError(path string, err error) *AppError {
	return Wrap(err, ErrCodeParse, "Template file is not valid JSON").
		WithContext("path", path)
}

// MissingFieldError reports a template file lacking a required field.
func MissingFieldError(field, path string) *AppError {
	return NewAppError(ErrCodeMissingField, fmt.Sprintf("Required field '%s' is missing", field)).
		WithContext("path", path)
}

// WriteError reports a filesystem write failure (permissions, missing
// directory, disk full).
func WriteError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeWrite, fmt.Sprintf("Write failed: %s", operation))
}

// BoundsError reports a sequence operation past either end of the list.
// Callers treat it as a no-op, not a failure.
func BoundsError(operation string) *AppError {
	return NewAppError(ErrCodeBounds, fmt.Sprintf("%s: index out of range", operation))
}

// NotFoundError reports a referenced resource absent from its folder.
func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InvalidInputError(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

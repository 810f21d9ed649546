// Package errors provides a lightweight structured error type (DocpressError)
// for category-based classification across the loader, renderer, and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a docpress error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External system integration errors
	CategoryNetwork ErrorCategory = "network"
	CategoryGit     ErrorCategory = "git"

	// Load and render errors
	CategoryLoad       ErrorCategory = "load"
	CategoryRender     ErrorCategory = "render"
	CategoryLink       ErrorCategory = "link"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryServe    ErrorCategory = "serve"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocpressError is a structured error with category, severity, and context
type DocpressError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocpressError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocpressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocpressError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocpressError) WithContext(key string, value any) *DocpressError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithSeverity overrides the severity of the error
func (e *DocpressError) WithSeverity(severity ErrorSeverity) *DocpressError {
	e.Severity = severity
	return e
}

// New creates a new DocpressError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocpressError {
	return &DocpressError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new DocpressError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocpressError {
	return &DocpressError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// WrapError wraps an existing error at SeverityError
func WrapError(err error, category ErrorCategory, message string) *DocpressError {
	return &DocpressError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if de, ok := err.(*DocpressError); ok {
		return de.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocpressError
func GetCategory(err error) ErrorCategory {
	if de, ok := err.(*DocpressError); ok {
		return de.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error
func ValidationError(message string) *DocpressError {
	return &DocpressError{
		Category:  CategoryValidation,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// Package errors provides a lightweight structured error type (AuditError)
// for category-based classification in the auditor CLI.
//
// Only configuration-level failures become errors: a missing page, a broken
// link or an unresolved image is a finding and lives in the audit result.
package errors

import "fmt"

// ErrorCategory classifies an AuditError.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryStorage    ErrorCategory = "storage"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// AuditError is a structured error with category, severity, and context.
type AuditError struct {
	Category ErrorCategory
	Severity ErrorSeverity
	Message  string
	Cause    error
	Context  ContextFields
}

// ContextFields carries structured context for AuditError.
type ContextFields map[string]any

func (e *AuditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

func (e *AuditError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *AuditError) WithContext(key string, value any) *AuditError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new AuditError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *AuditError {
	return &AuditError{Category: category, Severity: severity, Message: message}
}

// Wrap creates a new AuditError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *AuditError {
	return &AuditError{Category: category, Severity: severity, Message: message, Cause: err}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if ae, ok := err.(*AuditError); ok {
		return ae.Category == category
	}
	return false
}

// Nav and help-index configuration failures are fatal: a broken nav tree
// invalidates every downstream resolution decision.

func ConfigNotFound(path string) *AuditError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func NavReadFailed(path string, cause error) *AuditError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "nav configuration unreadable").
		WithContext("path", path)
}

func NavDecodeFailed(path string, cause error) *AuditError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "nav configuration malformed").
		WithContext("path", path)
}

func IncludeCycle(path string) *AuditError {
	return New(CategoryValidation, SeverityFatal, "include cycle detected").
		WithContext("path", path)
}

func HelpIndexReadFailed(path string, cause error) *AuditError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "help index unreadable").
		WithContext("path", path)
}

func WalkFailed(root string, cause error) *AuditError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "documentation walk failed").
		WithContext("root", root)
}

func StorageError(operation string, cause error) *AuditError {
	return Wrap(cause, CategoryStorage, SeverityError, "history store operation failed").
		WithContext("operation", operation)
}

// Package errors provides consistent error types for Chronos.
// It defines two main categories: UserError (the caller can fix it, including
// identity and access failures) and SystemError (store failures). Nothing in
// this layer is retried automatically, so there is no recoverable category.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrIdentityMismatch  = errors.New("IDENTITY_MISMATCH: ACCESS_DENIED")
	ErrSignalCollision   = errors.New("SIGNAL_COLLISION: USER_EXISTS")
	ErrAccessDenied      = errors.New("ACCESS_DENIED")
	ErrStoreFailure      = errors.New("store failure")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrDiskFull          = errors.New("disk full: unable to write to database")
	ErrUnknownNamespace  = errors.New("unknown namespace")
	ErrTaskNotFound      = errors.New("daily task not found")
	ErrHistoryNotFound   = errors.New("history entry not found")
	ErrLogNotFound       = errors.New("log entry not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrBlobNotFound      = errors.New("blob not found")
	ErrInvalidInput      = errors.New("invalid input")
)

// UserError represents an error that the user can fix.
// Examples: a wrong letter key, an already registered email, an empty title.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel this error is an instance of (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
		Cause:      ErrInvalidInput,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
		Cause:      ErrInvalidInput,
	}
}

// Denied wraps one of the identity/access sentinels as a UserError without
// revealing anything beyond the sentinel itself.
func Denied(sentinel error) *UserError {
	return &UserError{
		Message: sentinel.Error(),
		Cause:   sentinel,
	}
}

// NotFound wraps a not-found sentinel with the id that was looked up.
func NotFound(sentinel error, id string) *UserError {
	return &UserError{
		Message: sentinel.Error(),
		Field:   "id",
		Value:   id,
		Cause:   sentinel,
	}
}

// SystemError represents a system-level error that the user cannot directly fix.
// Examples: serialization failure, quota exhaustion, badger or sqlite I/O errors.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s: %v", e.Message, e.Op, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SystemError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStoreFailure}
	}
	return []error{ErrStoreFailure, e.Cause}
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// AsSystemError extracts a SystemError from an error chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	ok := errors.As(err, &se)
	return se, ok
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

package errors

import (
	"errors"
	"net/http"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, wrong secret).
	CategoryUser
	// CategorySystem indicates a store failure.
	CategorySystem
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) || errors.Is(err, ErrStoreFailure) || errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrDiskFull) {
		return CategorySystem
	}
	if isUserSentinel(err) {
		return CategoryUser
	}
	return CategoryUnknown
}

func isUserSentinel(err error) bool {
	for _, s := range []error{
		ErrIdentityMismatch, ErrSignalCollision, ErrAccessDenied,
		ErrTaskNotFound, ErrHistoryNotFound, ErrLogNotFound, ErrMilestoneNotFound,
		ErrBlobNotFound, ErrInvalidInput, ErrUnknownNamespace,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

// IsDenial reports whether err is an identity, access or signal failure. The
// presentation layer routes these through the notification ledger as warnings.
func IsDenial(err error) bool {
	return errors.Is(err, ErrIdentityMismatch) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrSignalCollision)
}

// HTTPStatus maps an error to the status code the HTTP façade responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrIdentityMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrSignalCollision):
		return http.StatusConflict
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrHistoryNotFound),
		errors.Is(err, ErrLogNotFound), errors.Is(err, ErrMilestoneNotFound),
		errors.Is(err, ErrBlobNotFound), errors.Is(err, ErrUnknownNamespace):
		return http.StatusNotFound
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrDiskFull):
		return http.StatusInsufficientStorage
	case Classify(err) == CategoryUser:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FormatByCategory returns a user-appropriate error message based on category.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	switch Classify(err) {
	case CategoryUser:
		return msg + "\n\nTry: " + suggestionFor(err)

	case CategorySystem:
		return "System error: " + msg + "\n\n" + suggestionFor(err)

	default:
		return msg
	}
}

// suggestionFor prefers the specific suggestion and falls back to the
// generic one for the error's category.
func suggestionFor(err error) string {
	if s := GetSuggestion(err); s != "" {
		return s
	}
	return GetCategorySuggestion(err)
}

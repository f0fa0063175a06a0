package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrIdentityMismatch:  "Check the email and password, or use the 8-symbol morse pattern.",
	ErrSignalCollision:   "That email is already registered. Use 'chronos login' instead.",
	ErrAccessDenied:      "The letter key does not match. Keys are case-sensitive patterns of '.' and '-'.",
	ErrTaskNotFound:      "Use 'chronos daily' to see active daily tasks.",
	ErrHistoryNotFound:   "Use 'chronos daily history' to see archived tasks.",
	ErrLogNotFound:       "Use 'chronos log list' to see log entries.",
	ErrMilestoneNotFound: "Use 'chronos milestone' to see milestones.",
	ErrBlobNotFound:      "The attachment was removed or never uploaded.",
	ErrUnknownNamespace:  "Known namespaces: settings, milestones, logs, daily_tasks, daily_history, user_profile.",

	// System errors
	ErrQuotaExceeded: "The record is too large. Remove old log entries or raise CHRONOS_MAX_RECORD_BYTES.",
	ErrDiskFull:      "Free up disk space and try again. The previous record is still intact.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Typed suggestions take precedence over sentinel defaults
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	switch Classify(err) {
	case CategoryUser:
		return "Check your input and try again. Use --help for usage information."
	case CategorySystem:
		return "Run with --debug for details. Your records were not modified."
	default:
		return ""
	}
}

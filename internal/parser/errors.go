package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/chronos/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// DurationExamples provides example duration formats.
var DurationExamples = []string{
	"7.5h",
	"7h30m",
	"8 hours",
	"0:45",
}

// TargetExamples provides example letter target dates.
var TargetExamples = []string{
	"+5y",
	"+6mo",
	"2031-01-01",
	"next year",
	"in 10 years",
}

// NewDurationError creates a duration parse error with standard examples.
func NewDurationError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "duration",
		Message:    "could not parse duration",
		Examples:   DurationExamples,
		Suggestion: "Durations can be specified as hours (h), minutes (m), or m:ss.",
	}
}

// NewTargetError creates a target date parse error with standard examples.
func NewTargetError(input, message string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "target date",
		Message:    message,
		Examples:   TargetExamples,
		Suggestion: "Targets can be offsets (+5y) or dates (2031-01-01, next year).",
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}
	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
}

// Unwrap lets errors.Is match the generic invalid-input sentinel.
func (e *TimeParseError) Unwrap() error {
	return errors.ErrInvalidInput
}

package parser

import (
	"testing"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestTimeParseErrorError(t *testing.T) {
	err := &TimeParseError{
		Input:   "someday",
		Field:   "target date",
		Message: "could not parse target date",
	}
	result := err.Error()
	assert.Contains(t, result, "invalid target date")
	assert.Contains(t, result, "someday")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestNewDurationError(t *testing.T) {
	err := NewDurationError("badvalue")
	assert.Equal(t, "duration", err.Field)
	assert.Equal(t, "badvalue", err.Input)
	assert.Contains(t, err.Message, "could not parse duration")
	assert.Equal(t, DurationExamples, err.Examples)
	assert.Contains(t, err.Suggestion, "hours")
}

func TestNewTargetError(t *testing.T) {
	err := NewTargetError("2020-01-01", "target date must be in the future")
	assert.Equal(t, "target date", err.Field)
	assert.Equal(t, TargetExamples, err.Examples)
}

func TestToUserError(t *testing.T) {
	t.Run("with_suggestion", func(t *testing.T) {
		userErr := NewDurationError("lots").ToUserError()
		assert.Contains(t, userErr.Error(), "could not parse duration")
		assert.Equal(t, "duration", userErr.Field)
		assert.Equal(t, "lots", userErr.Value)
		assert.True(t, errors.IsUserError(userErr))
	})

	t.Run("with_examples_no_suggestion", func(t *testing.T) {
		err := &TimeParseError{
			Input:    "x",
			Field:    "target date",
			Message:  "could not parse",
			Examples: []string{"+1y", "+2y", "+3y", "+4y"},
		}
		assert.Equal(t, "Try: +1y, +2y, +3y", err.ToUserError().Suggestion)
	})
}

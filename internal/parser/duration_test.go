package parser

import (
	"testing"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		valid    bool
	}{
		// Standard Go duration formats
		{"go_duration_hours", "7h", 7 * time.Hour, true},
		{"go_duration_combined", "7h30m", 450 * time.Minute, true},
		{"go_duration_seconds", "45s", 45 * time.Second, true},

		// Human-readable formats
		{"hours_hrs", "8hrs", 8 * time.Hour, true},
		{"hours_hours", "8 hours", 8 * time.Hour, true},
		{"minutes_min", "30min", 30 * time.Minute, true},
		{"seconds_seconds", "45 seconds", 45 * time.Second, true},
		{"combined_spaced", "7h 30m", 450 * time.Minute, true},
		{"decimal_hours", "7.5h", 450 * time.Minute, true},

		// Just numbers (default to hours)
		{"number_only", "8", 8 * time.Hour, true},
		{"decimal_number", "6.5", 390 * time.Minute, true},

		// Recorder lengths
		{"clock_short", "0:45", 45 * time.Second, true},
		{"clock_long", "12:05", 12*time.Minute + 5*time.Second, true},
		{"clock_bad_seconds", "1:75", 0, false},

		// Invalid
		{"empty_string", "", 0, false},
		{"whitespace_only", "   ", 0, false},
		{"invalid_format", "abc", 0, false},
		{"negative", "-1h", 0, false},

		// Case insensitivity
		{"uppercase_HOURS", "8 HOURS", 8 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseDuration(tt.input)
			assert.Equal(t, tt.valid, result.Valid, "Valid mismatch for input: %s", tt.input)
			if tt.valid {
				assert.Equal(t, tt.expected, result.Duration, "Duration mismatch for input: %s", tt.input)
			}
		})
	}
}

func TestParseDurationZeroValue(t *testing.T) {
	result := ParseDuration("0h")
	assert.True(t, result.Valid)
	assert.Equal(t, time.Duration(0), result.Duration)
}

func TestParseClock(t *testing.T) {
	d, ok := ParseClock(" 3:07 ")
	assert.True(t, ok)
	assert.Equal(t, 3*time.Minute+7*time.Second, d)

	_, ok = ParseClock("3m")
	assert.False(t, ok)
}

func TestParseSleep(t *testing.T) {
	hours, err := ParseSleep("7h30m")
	require.NoError(t, err)
	assert.Equal(t, 7.5, hours)

	hours, err = ParseSleep("8")
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)

	_, err = ParseSleep("0:45")
	assert.True(t, errors.IsUserError(err))

	_, err = ParseSleep("lots")
	assert.True(t, errors.IsUserError(err))
}

func TestUnitToDuration(t *testing.T) {
	tests := []struct {
		value    float64
		unit     string
		expected time.Duration
	}{
		{1, "h", time.Hour},
		{2, "hours", 2 * time.Hour},
		{30, "min", 30 * time.Minute},
		{15, "minutes", 15 * time.Minute},
		{45, "secs", 45 * time.Second},
		{1.5, "h", 90 * time.Minute},
		{2.5, "m", 150 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.expected, unitToDuration(tt.value, tt.unit))
		})
	}

	t.Run("unknown_defaults_to_hours", func(t *testing.T) {
		assert.Equal(t, 2*time.Hour, unitToDuration(2, "xyz"))
	})
}

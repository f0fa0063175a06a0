package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DurationResult represents the result of parsing a duration.
type DurationResult struct {
	Duration time.Duration
	Valid    bool
}

// durationPattern matches duration expressions like "7h", "30m", "7h30m", "7.5h", etc.
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes|s|sec|secs|second|seconds)?\s*(?:(\d+(?:\.\d+)?)\s*(m|min|mins|minute|minutes))?$`)

// clockPattern matches recorder lengths like "0:45" or "12:05".
var clockPattern = regexp.MustCompile(`^(\d+):([0-5]\d)$`)

// ParseDuration parses a human-readable duration string.
// Supports formats like:
//   - "7h" or "7 hours"
//   - "45m" or "45 minutes"
//   - "7h30m" or "7 hours 30 minutes"
//   - "7.5h" or a bare "7.5" (hours)
//   - "0:45" (minutes and seconds, as recorders show it)
func ParseDuration(input string) DurationResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return DurationResult{Valid: false}
	}

	if d, ok := ParseClock(input); ok {
		return DurationResult{Duration: d, Valid: true}
	}

	// Try standard Go duration format first (e.g., "2h30m")
	if d, err := time.ParseDuration(input); err == nil {
		if d < 0 {
			return DurationResult{Valid: false}
		}
		return DurationResult{Duration: d, Valid: true}
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return DurationResult{Valid: false}
	}

	var total time.Duration

	// First number and unit
	if matches[1] != "" {
		value, _ := strconv.ParseFloat(matches[1], 64)
		unit := strings.ToLower(matches[2])
		if unit == "" {
			unit = "h"
		}
		total += unitToDuration(value, unit)
	}

	// Second number and unit (for "7h 30m" style)
	if matches[3] != "" {
		value, _ := strconv.ParseFloat(matches[3], 64)
		total += unitToDuration(value, strings.ToLower(matches[4]))
	}

	return DurationResult{Duration: total, Valid: true}
}

// ParseClock parses an "m:ss" length.
func ParseClock(input string) (time.Duration, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return 0, false
	}
	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	return time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second, true
}

// ParseSleep parses a night's sleep into hours.
func ParseSleep(input string) (float64, error) {
	r := ParseDuration(input)
	if !r.Valid || clockPattern.MatchString(strings.TrimSpace(input)) {
		return 0, NewDurationError(input).ToUserError()
	}
	return r.Duration.Hours(), nil
}

// unitToDuration converts a value and unit to a duration.
func unitToDuration(value float64, unit string) time.Duration {
	switch unit {
	case "h", "hr", "hrs", "hour", "hours":
		return time.Duration(value * float64(time.Hour))
	case "m", "min", "mins", "minute", "minutes":
		return time.Duration(value * float64(time.Minute))
	case "s", "sec", "secs", "second", "seconds":
		return time.Duration(value * float64(time.Second))
	default:
		// Default to hours
		return time.Duration(value * float64(time.Hour))
	}
}

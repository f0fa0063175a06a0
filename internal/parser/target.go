package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// relativeTargetRegex matches offsets like "+30d", "+2w", "+6mo", "+5y".
var relativeTargetRegex = regexp.MustCompile(`^\+(\d+)(d|w|mo|y)$`)

// isoDate matches a bare calendar date.
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseTarget parses the date a letter is meant to be read on.
// Supports formats like:
//   - "+30d", "+2w", "+6mo", "+5y" (offsets from now)
//   - "2031-01-01" (ISO date, midnight in loc)
//   - "next year", "in 5 years", "january 1 2030" (natural language)
//
// The result must lie after now.
func ParseTarget(input string, now time.Time, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, NewTargetError(input, "target date is required")
	}
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	var target time.Time
	switch {
	case relativeTargetRegex.MatchString(input):
		m := relativeTargetRegex.FindStringSubmatch(input)
		n, _ := strconv.Atoi(m[1])
		if n <= 0 {
			return time.Time{}, NewTargetError(input, "offset must be positive")
		}
		target = addOffset(now, n, m[2])

	case isoDate.MatchString(input):
		t, err := time.ParseInLocation("2006-01-02", input, loc)
		if err != nil {
			return time.Time{}, NewTargetError(input, "not a calendar date")
		}
		target = t

	default:
		cfg := &dateparser.Configuration{
			CurrentTime:         now,
			DefaultTimezone:     loc,
			PreferredDateSource: dateparser.Future,
		}
		result, err := dateparser.Parse(cfg, input)
		if err != nil || result.Time.IsZero() {
			return time.Time{}, NewTargetError(input, "could not parse target date")
		}
		target = result.Time
	}

	if !target.After(now) {
		return time.Time{}, NewTargetError(input, "target date must be in the future")
	}
	return target, nil
}

func addOffset(now time.Time, n int, unit string) time.Time {
	switch unit {
	case "w":
		return now.AddDate(0, 0, 7*n)
	case "mo":
		return now.AddDate(0, n, 0)
	case "y":
		return now.AddDate(n, 0, 0)
	default:
		return now.AddDate(0, 0, n)
	}
}

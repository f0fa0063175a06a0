package parser

import (
	"testing"
	"testing/quick"
	"time"
)

// FuzzParseDuration checks the duration parser never panics or goes negative.
// Run with: go test ./internal/parser -fuzz=FuzzParseDuration -fuzztime=30s
func FuzzParseDuration(f *testing.F) {
	for _, seed := range []string{"7h", "30m", "7h30m", "7.5", "0:45", "12:05", "2 hours 30 minutes", "", "-1h", "1e9h"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		r := ParseDuration(input)
		if r.Valid && r.Duration < 0 {
			t.Errorf("ParseDuration(%q) = %v, want non-negative", input, r.Duration)
		}
	})
}

// FuzzParseTarget checks every accepted target lies after now.
// Run with: go test ./internal/parser -fuzz=FuzzParseTarget -fuzztime=30s
func FuzzParseTarget(f *testing.F) {
	for _, seed := range []string{"+30d", "+2w", "+6mo", "+5y", "2031-01-01", "next year", "in 5 years", "yesterday", "+0d", ""} {
		f.Add(seed)
	}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, input string) {
		target, err := ParseTarget(input, now, time.UTC)
		if err == nil && !target.After(now) {
			t.Errorf("ParseTarget(%q) = %v, not after %v", input, target, now)
		}
	})
}

func TestParseSleepProperty(t *testing.T) {
	// Whole minutes below a day round-trip through the "XhYm" form.
	f := func(mins uint16) bool {
		m := int(mins % (24 * 60))
		d := time.Duration(m) * time.Minute
		hours, err := ParseSleep(d.String())
		if m == 0 {
			return err == nil && hours == 0
		}
		return err == nil && time.Duration(hours*float64(time.Hour)).Round(time.Minute) == d
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

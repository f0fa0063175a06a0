package validate

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzSanitizeTitle checks sanitized titles are valid UTF-8 without control characters.
// Run with: go test ./internal/validate -fuzz=FuzzSanitizeTitle -fuzztime=30s
func FuzzSanitizeTitle(f *testing.F) {
	for _, seed := range []string{"Read 20 pages", "  spaced  ", "tab\tnewline\n", "\x00\x1b[31mred", "日本語", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := SanitizeTitle(input)
		if !utf8.ValidString(input) {
			return
		}
		if strings.ContainsAny(out, "\x00\x1b") {
			t.Errorf("SanitizeTitle(%q) = %q keeps control characters", input, out)
		}
	})
}

// FuzzMorse checks Morse accepts exactly the 8-symbol dot/dash patterns.
func FuzzMorse(f *testing.F) {
	for _, seed := range []string{"........", ".-.-.-.-", "--------", ".......", ".........", "abcdefgh", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		want := len(input) == 8 && strings.Trim(input, ".-") == ""
		got := Morse(input) == nil
		if got != want {
			t.Errorf("Morse(%q) valid = %v, want %v", input, got, want)
		}
	})
}

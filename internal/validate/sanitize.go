package validate

import (
	"strings"
	"unicode"
)

// SanitizeTitle trims a title and removes control characters.
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)

	var sb strings.Builder
	for _, r := range title {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SanitizeContent cleans a log entry or letter body for storage.
func SanitizeContent(content string) string {
	content = strings.TrimSpace(content)

	// Normalize line endings
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	return StripControlChars(content)
}

// SanitizeTag reduces a tag label to letters, numbers and dashes.
func SanitizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")

	var sb strings.Builder
	for _, r := range tag {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// StripControlChars removes all control characters from a string.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TruncateString truncates a string to the given number of runes, adding
// "..." if truncated.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

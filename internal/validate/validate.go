// Package validate provides input validation helpers for Chronos.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/chronos/internal/errors"
)

const (
	// MaxTitleLength is the maximum length for a task or milestone title.
	MaxTitleLength = 128
	// MaxContentLength is the maximum length for a log entry or letter body.
	MaxContentLength = 8192
	// MaxTagLength is the maximum length for a tag label.
	MaxTagLength = 32
	// MaxURLLength is the maximum length for an image reference.
	MaxURLLength = 2048
	// MinPasswordLength is the minimum password length.
	MinPasswordLength = 6
	// MorseLength is the fixed length of the alternate secret pattern.
	MorseLength = 8
	// MaxKeyLength is the maximum length of a letter key.
	MaxKeyLength = 64
)

// Title validates a task or milestone title.
func Title(field, title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewUserError(field+" cannot be empty", "Provide a "+field)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField(field, title,
			strings.ToUpper(field[:1])+field[1:]+" too long",
			fmt.Sprintf("Keep it to %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// Content validates a log entry or letter body.
func Content(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.NewUserError("Content cannot be empty", "Write something first")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return errors.NewUserError("Content too long",
			fmt.Sprintf("Content must be %d characters or fewer", MaxContentLength))
	}
	return nil
}

// Tag validates a tag label.
func Tag(label string) error {
	name := strings.TrimPrefix(strings.TrimSpace(label), "#")
	if name == "" {
		return errors.NewUserError("Tag cannot be empty", "Use a label like 'insight' or '#growth'")
	}
	if utf8.RuneCountInString(name) > MaxTagLength {
		return errors.NewUserErrorWithField("tag", label, "Tag too long",
			fmt.Sprintf("Tags must be %d characters or fewer", MaxTagLength))
	}
	return nil
}

// Email validates the identifying field of an account.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.NewUserError("Email cannot be empty", "Provide the email you registered with")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.NewUserErrorWithField("email", email,
			"Invalid email address",
			"Use a plain address like pioneer@chronos.com")
	}
	return nil
}

// Password validates a new account password.
func Password(password string) error {
	if password == "" {
		return errors.NewUserError("Password cannot be empty", "Choose a password")
	}
	if len(password) < MinPasswordLength {
		return errors.NewUserError("Password too short",
			fmt.Sprintf("Passwords must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// Morse validates the alternate secret pattern: exactly MorseLength symbols
// of '.' and '-'.
func Morse(pattern string) error {
	if len(pattern) != MorseLength {
		return errors.NewUserError("Invalid morse pattern",
			fmt.Sprintf("The pattern must be exactly %d symbols", MorseLength))
	}
	if !IsMorse(pattern) {
		return errors.NewUserError("Invalid morse pattern", "Use only '.' and '-'")
	}
	return nil
}

// IsMorse reports whether s consists only of '.' and '-'.
func IsMorse(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, ".-") == ""
}

// LetterKey validates a user-chosen letter key. Empty means "generate one".
func LetterKey(key string) error {
	if key == "" {
		return nil
	}
	if len(key) > MaxKeyLength {
		return errors.NewUserError("Letter key too long",
			fmt.Sprintf("Keys must be %d symbols or fewer", MaxKeyLength))
	}
	if !IsMorse(key) {
		return errors.NewUserErrorWithField("key", key, "Invalid letter key", "Use only '.' and '-'")
	}
	return nil
}

// ImageRef validates an image reference attached to a log: a blob URI,
// inline image data, or an http(s) URL.
func ImageRef(ref string) error {
	if ref == "" {
		return errors.NewUserError("Image reference cannot be empty", "Attach a file or a URL")
	}
	if len(ref) > MaxURLLength && !strings.HasPrefix(ref, "data:image/") {
		return errors.NewUserError("Image reference too long",
			fmt.Sprintf("URLs must be %d characters or fewer", MaxURLLength))
	}
	if strings.HasPrefix(ref, "blob://") || strings.HasPrefix(ref, "data:image/") {
		return nil
	}
	parsed, err := url.Parse(ref)
	if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return errors.NewUserErrorWithField("image", ref,
			"Invalid image reference",
			"Use an https:// URL or attach a local file")
	}
	return nil
}

// SleepHours validates a night's sleep in hours.
func SleepHours(hours float64) error {
	if hours < 0 || hours > 24 {
		return errors.NewUserErrorWithField("sleep", fmt.Sprintf("%g", hours),
			"Sleep out of range",
			"Sleep must be between 0 and 24 hours")
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}

package model

import "time"

// LetterStatus is the derived disclosure state of the future letter.
type LetterStatus string

const (
	LetterNone      LetterStatus = "none"
	LetterEncrypted LetterStatus = "encrypted"
	LetterOpen      LetterStatus = "open"
)

// RedactedContent replaces the letter body until it is opened.
const RedactedContent = "[ENCRYPTED]"

// FutureLetter is the single time-locked message.
type FutureLetter struct {
	Content       string       `json:"content,omitempty"`
	TargetDate    time.Time    `json:"targetDate,omitzero"`
	CreatedAt     time.Time    `json:"createdAt,omitzero"`
	DecryptionKey string       `json:"decryptionKey,omitempty"`
	Status        LetterStatus `json:"status"`
}

// Redacted returns the view shown to a caller without the key.
func (l FutureLetter) Redacted() FutureLetter {
	l.Content = RedactedContent
	l.DecryptionKey = ""
	l.Status = LetterEncrypted
	return l
}

// Remaining returns the time left until the target date, zero once it has passed.
func (l FutureLetter) Remaining(now time.Time) time.Duration {
	if l.TargetDate.IsZero() || !now.Before(l.TargetDate) {
		return 0
	}
	return l.TargetDate.Sub(now)
}

// Arrived reports whether the advisory target date has been reached.
func (l FutureLetter) Arrived(now time.Time) bool {
	return l.Remaining(now) == 0
}

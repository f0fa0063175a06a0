package model

import (
	"fmt"
	"strings"
	"time"
)

// TagType classifies a log tag.
type TagType string

const (
	TagGrowth      TagType = "growth"
	TagInsight     TagType = "insight"
	TagMindfulness TagType = "mindfulness"
	TagCustom      TagType = "custom"
)

// Tag labels a log entry.
type Tag struct {
	Label string  `json:"label"`
	Type  TagType `json:"type"`
}

// NewTag builds a tag from a free-form label, recognising the built-in types.
func NewTag(label string) Tag {
	label = strings.TrimSpace(label)
	name := strings.ToLower(strings.TrimPrefix(label, "#"))
	t := TagCustom
	switch TagType(name) {
	case TagGrowth, TagInsight, TagMindfulness:
		t = TagType(name)
	}
	if !strings.HasPrefix(label, "#") {
		label = "#" + strings.ToUpper(label)
	}
	return Tag{Label: label, Type: t}
}

// LogEntry is a journal entry.
type LogEntry struct {
	ID          string   `json:"id"`
	Time        string   `json:"time"`
	Date        string   `json:"date"`
	Content     string   `json:"content"`
	Tags        []Tag    `json:"tags"`
	IsHighlight bool     `json:"isHighlight,omitempty"`
	Images      []string `json:"images,omitempty"`
	HasVoice    bool     `json:"hasVoice,omitempty"`
	VoiceData   string   `json:"voiceData,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

// Stamp fills the display date and time from t when they are empty.
func (e *LogEntry) Stamp(t time.Time) {
	if e.Time == "" {
		e.Time = t.Format("15:04")
	}
	if e.Date == "" {
		e.Date = t.Format("Jan 2, 2006")
	}
	if e.Tags == nil {
		e.Tags = []Tag{}
	}
}

// LogPage is a slice of the journal.
type LogPage struct {
	Data    []LogEntry `json:"data"`
	HasMore bool       `json:"hasMore"`
}

// PageLogs slices logs for the zero-based page.
func PageLogs(logs []LogEntry, page, size int) LogPage {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		return LogPage{Data: []LogEntry{}, HasMore: len(logs) > 0}
	}
	start := page * size
	if start > len(logs) {
		start = len(logs)
	}
	end := start + size
	if end > len(logs) {
		end = len(logs)
	}
	out := make([]LogEntry, end-start)
	copy(out, logs[start:end])
	return LogPage{Data: out, HasMore: start+size < len(logs)}
}

// FormatClock renders a voice note length as m:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

package model

import (
	"fmt"
	"time"
)

// DailyTask is a recurring habit record.
type DailyTask struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Completed     bool       `json:"completed"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"lastCompleted,omitempty"`
}

// CompletedOn reports whether the task was last checked in on the given day key.
func (t DailyTask) CompletedOn(day string, loc *time.Location) bool {
	if t.LastCompleted == nil {
		return false
	}
	return DayKey(*t.LastCompleted, loc) == day
}

// ArchiveStatus is the outcome recorded when a task leaves the active set.
type ArchiveStatus string

const (
	ArchiveCompleted ArchiveStatus = "completed"
	ArchiveAborted   ArchiveStatus = "aborted"
)

// Valid reports whether s is a known outcome.
func (s ArchiveStatus) Valid() bool {
	return s == ArchiveCompleted || s == ArchiveAborted
}

// ParseArchiveStatus parses an outcome name.
func ParseArchiveStatus(s string) (ArchiveStatus, error) {
	status := ArchiveStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid archive status: %q", s)
	}
	return status, nil
}

// DailyTaskHistoryEntry is the immutable record of an archived task.
type DailyTaskHistoryEntry struct {
	ID          string        `json:"id"`
	TaskID      string        `json:"taskId,omitempty"`
	Title       string        `json:"title"`
	Status      ArchiveStatus `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	FinalStreak int           `json:"finalStreak"`
}

// DayKey returns the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02")
}

package model

import "fmt"

// MilestoneStatus is the progress of a long-term goal.
type MilestoneStatus string

const (
	MilestoneCompleted MilestoneStatus = "completed"
	MilestonePending   MilestoneStatus = "pending"
	MilestoneLongTerm  MilestoneStatus = "long-term"
	MilestoneMissed    MilestoneStatus = "missed"
)

// ParseMilestoneStatus parses a status name.
func ParseMilestoneStatus(s string) (MilestoneStatus, error) {
	switch st := MilestoneStatus(s); st {
	case MilestoneCompleted, MilestonePending, MilestoneLongTerm, MilestoneMissed:
		return st, nil
	}
	return "", fmt.Errorf("invalid milestone status: %q", s)
}

// Milestone is a long-term goal.
type Milestone struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Date           string          `json:"date,omitempty"`
	Status         MilestoneStatus `json:"status"`
	Category       string          `json:"category,omitempty"`
	Description    string          `json:"description,omitempty"`
	TimeCapsuleURL string          `json:"timeCapsuleUrl,omitempty"`
	Duration       string          `json:"duration,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	EstimatedAge   int             `json:"estimatedAge,omitempty"`
}

// CountCompleted returns how many milestones are completed.
func CountCompleted(ms []Milestone) int {
	n := 0
	for _, m := range ms {
		if m.Status == MilestoneCompleted {
			n++
		}
	}
	return n
}

// DefaultMilestones returns the milestones of a fresh store.
func DefaultMilestones() []Milestone {
	return []Milestone{
		{ID: "1", Title: "Summit Mt. Fuji", Date: "2023", Status: MilestoneCompleted, Category: "Adventure", EstimatedAge: 23},
		{ID: "2", Title: "Master Piano Concerto No. 2", Status: MilestonePending, Category: "Skill", EstimatedAge: 28},
		{ID: "3", Title: "Travel to Antarctica", Status: MilestoneLongTerm, Category: "Travel", EstimatedAge: 40},
		{ID: "4", Title: "Learn Surfing", Status: MilestoneMissed, Category: "Adventure", EstimatedAge: 22},
	}
}

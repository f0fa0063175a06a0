package attributes

import "github.com/manav03panchal/chronos/internal/model"

// Policy maps user actions to attribute growth. The engine itself knows
// nothing about these rules; callers look up the delta here and pass it to
// ApplyGrowth.
type Policy struct {
	// SleepMin and SleepMax bound the healthy sleep band, inclusive, in hours.
	SleepMin float64
	SleepMax float64
	Sleep    model.Growth

	// Milestone is granted when the number of completed milestones increases.
	Milestone model.Growth

	// CheckIn is granted when a daily task is toggled on.
	CheckIn model.Growth

	// Log is granted for every saved log. The remaining deltas are added on
	// top when the entry is highlighted or carries media.
	Log       model.Growth
	Highlight model.Growth
	Images    model.Growth
	Voice     model.Growth
}

// DefaultPolicy returns the stock growth rules.
func DefaultPolicy() Policy {
	return Policy{
		SleepMin:  7,
		SleepMax:  9,
		Sleep:     model.Growth{Health: 0.05},
		Milestone: model.Growth{Adventure: 0.15, Skill: 0.15},
		CheckIn:   model.Growth{Spirit: 0.02, Mind: 0.01},
		Log:       model.Growth{Spirit: 0.04, Mind: 0.03},
		Highlight: model.Growth{Spirit: 0.04},
		Images:    model.Growth{Adventure: 0.05},
		Voice:     model.Growth{Skill: 0.05},
	}
}

// ForSleep returns the growth earned by a night of the given length.
func (p Policy) ForSleep(hours float64) model.Growth {
	if hours >= p.SleepMin && hours <= p.SleepMax {
		return p.Sleep
	}
	return model.Growth{}
}

// ForMilestones returns the growth earned when the completed count moves
// from before to after.
func (p Policy) ForMilestones(before, after int) model.Growth {
	if after > before {
		return p.Milestone
	}
	return model.Growth{}
}

// ForCheckIn returns the growth earned by checking in a daily task.
func (p Policy) ForCheckIn() model.Growth {
	return p.CheckIn
}

// ForLog returns the growth earned by saving entry.
func (p Policy) ForLog(entry model.LogEntry) model.Growth {
	g := p.Log
	if entry.IsHighlight {
		g = g.Plus(p.Highlight)
	}
	if len(entry.Images) > 0 {
		g = g.Plus(p.Images)
	}
	if entry.HasVoice {
		g = g.Plus(p.Voice)
	}
	return g
}

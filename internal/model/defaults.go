package model

// Seed returns the value a read of ns yields when the record is absent.
// ok is false for namespaces whose absence has its own meaning, such as the
// future letter.
func Seed(ns Namespace) (v any, ok bool) {
	switch ns {
	case NSSettings:
		return DefaultSettings(), true
	case NSMilestones:
		return DefaultMilestones(), true
	case NSLogs:
		return DefaultLogs(), true
	case NSDailyTasks:
		return []DailyTask{}, true
	case NSDailyHistory:
		return []DailyTaskHistoryEntry{}, true
	case NSUserProfile:
		return UserProfile{Name: DefaultProfileName}, true
	case NSUsers:
		return []User{}, true
	case NSAttributes:
		return SeedAttributes(), true
	case NSNotifications:
		return []Notification{}, true
	}
	return nil, false
}

// DefaultLogs returns the sample journal of a fresh store.
func DefaultLogs() []LogEntry {
	return []LogEntry{
		{
			ID: "1", Time: "21:30", Date: "Oct 14, 2023", IsHighlight: true,
			Content: "Finally understood the core concept of temporal dynamics today. It felt like a door opening in my mind.",
			Tags:    []Tag{{Label: "#INSIGHT", Type: TagInsight}, {Label: "#GROWTH", Type: TagGrowth}},
		},
		{
			ID: "2", Time: "08:45", Date: "Oct 12, 2023", HasVoice: true, Duration: "0:45",
			Content: "Morning meditation was particularly deep. Realized that speed is often the enemy of progress.",
			Tags:    []Tag{{Label: "#MINDFULNESS", Type: TagMindfulness}},
		},
		{
			ID: "3", Time: "14:20", Date: "Oct 05, 2023",
			Content: "Started reading a new philosophy book. It challenges my perception of linear time.",
			Tags:    []Tag{{Label: "#GROWTH", Type: TagGrowth}},
		},
		{
			ID: "4", Time: "19:15", Date: "Sep 28, 2023",
			Content: "Felt a strong sense of nostalgia today while walking through the park. The autumn air changes everything.",
			Tags:    []Tag{{Label: "#REFLECTION", Type: TagCustom}},
		},
		{
			ID: "5", Time: "10:00", Date: "Sep 15, 2023", IsHighlight: true,
			Content: "Achieved a breakthrough in coding project. The flow state was real.",
			Tags:    []Tag{{Label: "#ACHIEVEMENT", Type: TagGrowth}},
		},
		{
			ID: "6", Time: "22:30", Date: "Aug 22, 2023",
			Content: "Late night thoughts about the scale of the universe. We are so small yet significant.",
			Tags:    []Tag{{Label: "#INSIGHT", Type: TagInsight}},
		},
		{
			ID: "7", Time: "18:45", Date: "Aug 08, 2023",
			Content: "Discovered a new hiking trail. Nature has a way of resetting the mind.",
			Images:  []string{"https://images.unsplash.com/photo-1551632811-561732d1e306?w=200&q=80"},
			Tags:    []Tag{{Label: "#MINDFULNESS", Type: TagMindfulness}},
		},
		{
			ID: "8", Time: "09:00", Date: "Jul 14, 2023",
			Content: "Mid-year review. Progress is slower than expected, but steady. Patience is key.",
			Tags:    []Tag{{Label: "#GROWTH", Type: TagGrowth}},
		},
	}
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Namespace Tests
// =============================================================================

func TestNamespaceValid(t *testing.T) {
	for _, ns := range AllNamespaces {
		assert.True(t, ns.Valid(), ns)
	}
	assert.False(t, Namespace("nope").Valid())
}

func TestNamespacePublic(t *testing.T) {
	assert.True(t, NSSettings.Public())
	assert.True(t, NSLogs.Public())
	assert.False(t, NSFutureLetter.Public())
	assert.False(t, NSUsers.Public())
	assert.False(t, NSAttributes.Public())
}

func TestNamespaceKey(t *testing.T) {
	assert.Equal(t, "chronos:v3:daily_tasks", NSDailyTasks.Key())
}

func TestSeed(t *testing.T) {
	t.Run("letter_has_no_seed", func(t *testing.T) {
		_, ok := Seed(NSFutureLetter)
		assert.False(t, ok)
	})

	t.Run("attributes_seed", func(t *testing.T) {
		v, ok := Seed(NSAttributes)
		require.True(t, ok)
		assert.Equal(t, CoreAttributes{Health: 0.7, Mind: 0.5, Skill: 0.4, Social: 0.6, Adventure: 0.3, Spirit: 0.5}, v)
	})

	t.Run("profile_seed", func(t *testing.T) {
		v, ok := Seed(NSUserProfile)
		require.True(t, ok)
		assert.Equal(t, DefaultProfileName, v.(UserProfile).Name)
	})

	t.Run("lists_seed_empty", func(t *testing.T) {
		v, _ := Seed(NSDailyTasks)
		assert.Empty(t, v)
		v, _ = Seed(NSNotifications)
		assert.Empty(t, v)
	})
}

// =============================================================================
// Attribute Tests
// =============================================================================

func TestDecayFloors(t *testing.T) {
	a := SeedAttributes().Decay(5)
	for _, n := range a.Named() {
		assert.Equal(t, AttributeMin, n.Value, n.Name)
	}
}

func TestDecayNegativeIsNoop(t *testing.T) {
	seed := SeedAttributes()
	assert.Equal(t, seed, seed.Decay(-1))
}

func TestGrowCaps(t *testing.T) {
	a := SeedAttributes().Grow(Growth{Health: 10, Spirit: 0.1})
	assert.Equal(t, AttributeMax, a.Health)
	assert.InDelta(t, 0.6, a.Spirit, 1e-9)
	assert.Equal(t, 0.5, a.Mind)
}

func TestGrowthPlus(t *testing.T) {
	g := Growth{Spirit: 0.04}.Plus(Growth{Spirit: 0.04, Mind: 0.03})
	assert.InDelta(t, 0.08, g.Spirit, 1e-9)
	assert.InDelta(t, 0.03, g.Mind, 1e-9)
	assert.True(t, Growth{}.IsZero())
	assert.False(t, g.IsZero())
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics(SeedAttributes(), 12)
	assert.InDelta(t, 90.0, a.Soul.MoodStability, 1e-9)
	assert.Equal(t, 50, a.Mind.FocusScore)
	assert.Equal(t, 12, a.Mind.BooksRead)
}

// =============================================================================
// Daily Task Tests
// =============================================================================

func TestDayKey(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	ts := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-01", DayKey(ts, time.UTC))
	assert.Equal(t, "2026-03-02", DayKey(ts, tokyo))
}

func TestCompletedOn(t *testing.T) {
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	task := DailyTask{LastCompleted: &ts}
	assert.True(t, task.CompletedOn("2026-03-01", time.UTC))
	assert.False(t, task.CompletedOn("2026-03-02", time.UTC))
	assert.False(t, DailyTask{}.CompletedOn("2026-03-01", time.UTC))
}

func TestParseArchiveStatus(t *testing.T) {
	s, err := ParseArchiveStatus("aborted")
	require.NoError(t, err)
	assert.Equal(t, ArchiveAborted, s)

	_, err = ParseArchiveStatus("skipped")
	assert.Error(t, err)
}

// =============================================================================
// Letter Tests
// =============================================================================

func TestLetterRedacted(t *testing.T) {
	l := FutureLetter{Content: "hello", DecryptionKey: ".-.-", Status: LetterOpen}
	r := l.Redacted()
	assert.Equal(t, RedactedContent, r.Content)
	assert.Empty(t, r.DecryptionKey)
	assert.Equal(t, LetterEncrypted, r.Status)
	assert.Equal(t, "hello", l.Content)
}

func TestLetterRemaining(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := FutureLetter{TargetDate: now.Add(48 * time.Hour)}
	assert.Equal(t, 48*time.Hour, l.Remaining(now))
	assert.False(t, l.Arrived(now))
	assert.True(t, l.Arrived(now.Add(49*time.Hour)))
}

// =============================================================================
// Log Tests
// =============================================================================

func TestPageLogs(t *testing.T) {
	logs := DefaultLogs()
	require.Len(t, logs, 8)

	p := PageLogs(logs, 0, 3)
	assert.Len(t, p.Data, 3)
	assert.True(t, p.HasMore)

	p = PageLogs(logs, 2, 3)
	assert.Len(t, p.Data, 2)
	assert.False(t, p.HasMore)

	p = PageLogs(logs, 10, 3)
	assert.Empty(t, p.Data)
	assert.False(t, p.HasMore)
}

func TestNewTag(t *testing.T) {
	assert.Equal(t, Tag{Label: "#INSIGHT", Type: TagInsight}, NewTag("insight"))
	assert.Equal(t, Tag{Label: "#REFLECTION", Type: TagCustom}, NewTag("reflection"))
	assert.Equal(t, Tag{Label: "#GROWTH", Type: TagGrowth}, NewTag("#GROWTH"))
}

func TestLogStamp(t *testing.T) {
	e := LogEntry{}
	e.Stamp(time.Date(2026, 10, 14, 21, 30, 0, 0, time.UTC))
	assert.Equal(t, "21:30", e.Time)
	assert.Equal(t, "Oct 14, 2026", e.Date)
	assert.NotNil(t, e.Tags)
}

// =============================================================================
// Profile / Milestone Tests
// =============================================================================

func TestProfileUpdateApply(t *testing.T) {
	name := "Cooper"
	p := ProfileUpdate{Name: &name}.Apply(UserProfile{Name: DefaultProfileName, AvatarURL: "blob://x"})
	assert.Equal(t, "Cooper", p.Name)
	assert.Equal(t, "blob://x", p.AvatarURL)
}

func TestCountCompleted(t *testing.T) {
	assert.Equal(t, 1, CountCompleted(DefaultMilestones()))
	_, err := ParseMilestoneStatus("done")
	assert.Error(t, err)
}

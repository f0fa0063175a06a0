package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestFormatter(format Format) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Formatter{
		Writer:    &buf,
		Format:    format,
		ColorMode: ColorNever,
		Now:       func() time.Time { return testNow },
	}, &buf
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{Writer: &buf, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)

	m, err := ParseColorMode("never")
	require.NoError(t, err)
	assert.Equal(t, ColorNever, m)

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestFormatterJSON(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, f.JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "70%", FormatPercent(0.7))
	assert.Equal(t, "10%", FormatPercent(0.1))
	assert.Equal(t, "100%", FormatPercent(1))
	assert.Equal(t, "53%", FormatPercent(0.526))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(-5))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 kB", FormatBytes(1500))
}

func TestFormatAgo(t *testing.T) {
	assert.Equal(t, "never", FormatAgo(time.Time{}, testNow))
	assert.Equal(t, "3 minutes ago", FormatAgo(testNow.Add(-3*time.Minute), testNow))
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "arrived"},
		{-time.Hour, "arrived"},
		{90 * time.Second, "2m"},
		{3*time.Hour + 5*time.Minute, "3h 5m"},
		{50 * time.Hour, "2d 2h"},
		{(365*2 + 10) * 24 * time.Hour, "2y 10d"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.d))
		})
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(150, 10))
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(-5, 10))
}

// =============================================================================
// CLI Formatter Tests
// =============================================================================

func TestCLIMessages(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	c := NewCLIFormatter(f)

	c.Success("saved")
	c.Warning("careful")
	c.Error("failed")
	c.Muted("quiet")

	assert.Equal(t, "✓ saved\n⚠ careful\n✗ failed\nquiet\n", buf.String())
}

func TestPrintAttributes(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintAttributes(model.SeedAttributes())

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "health")
	assert.Contains(t, lines[0], "70%")
	assert.Contains(t, out, "adventure")
}

func TestPrintAnalytics(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintAnalytics(model.NewAnalytics(model.SeedAttributes(), 12))

	out := buf.String()
	assert.Contains(t, out, "Mood stability  90.0")
	assert.Contains(t, out, "Focus score     50")
	assert.Contains(t, out, "Books read      12")
}

func TestPrintDailyTasks(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	c := NewCLIFormatter(f)

	c.PrintDailyTasks(nil)
	assert.Contains(t, buf.String(), "No daily tasks.")

	buf.Reset()
	c.PrintDailyTasks([]model.DailyTask{
		{ID: "a", Title: "Meditate", Completed: true, Streak: 3},
		{ID: "b", Title: "Read"},
	})
	out := buf.String()
	assert.Contains(t, out, "[✓] Meditate  streak 3  a")
	assert.Contains(t, out, "[ ] Read  streak 0  b")
}

func TestPrintHistory(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintHistory([]model.DailyTaskHistoryEntry{
		{ID: "h1", Title: "Run", Status: model.ArchiveAborted, FinalStreak: 4, Timestamp: testNow.Add(-2 * time.Hour)},
	})

	out := buf.String()
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "aborted")
	assert.Contains(t, out, "2 hours ago")
}

func TestPrintLog(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintLog(model.DefaultLogs()[1])

	out := buf.String()
	assert.Contains(t, out, "Oct 12, 2023 08:45")
	assert.Contains(t, out, "#MINDFULNESS")
	assert.Contains(t, out, "voice 0:45")
}

func TestPrintLogPage(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	c := NewCLIFormatter(f)

	c.PrintLogPage(model.PageLogs(model.DefaultLogs(), 0, 2), 0)
	assert.Contains(t, buf.String(), "--page 1")

	buf.Reset()
	c.PrintLogPage(model.LogPage{}, 3)
	assert.Contains(t, buf.String(), "No log entries.")
}

func TestPrintLetter(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	c := NewCLIFormatter(f)

	c.PrintLetter(model.FutureLetter{Status: model.LetterNone})
	assert.Contains(t, buf.String(), "No letter sealed.")

	buf.Reset()
	sealed := model.FutureLetter{
		Content:    "hello",
		TargetDate: testNow.Add(50 * time.Hour),
		CreatedAt:  testNow.Add(-time.Hour),
		Status:     model.LetterEncrypted,
	}.Redacted()
	c.PrintLetter(sealed)
	out := buf.String()
	assert.Contains(t, out, "sealed")
	assert.Contains(t, out, "2d 2h")
	assert.Contains(t, out, model.RedactedContent)
	assert.NotContains(t, out, "hello")
}

func TestPrintNotifications(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintNotifications([]model.Notification{
		{ID: "1", Message: "Task archived", Type: model.NotifySuccess, Timestamp: testNow.Add(-time.Minute)},
		{ID: "2", Message: "ACCESS_DENIED", Type: model.NotifyWarning, Timestamp: testNow.Add(-time.Minute)},
	})

	out := buf.String()
	assert.Contains(t, out, "✓ Task archived  1 minute ago")
	assert.Contains(t, out, "! ACCESS_DENIED")
}

func TestPrintMilestones(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintMilestones(model.DefaultMilestones())

	out := buf.String()
	assert.Contains(t, out, "Summit Mt. Fuji")
	assert.Contains(t, out, "long-term")
	assert.Contains(t, out, "1 of 4 completed")
}

func TestPrintSettings(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintSettings(model.DefaultSettings())

	out := buf.String()
	assert.Contains(t, out, "1999-01-01 08:30")
	assert.Contains(t, out, "Sleep today   8h")
	assert.Contains(t, out, "Graduation on 2026-06-15")
}

func TestPrintTimeMetrics(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintTimeMetrics(model.TimeMetrics{
		LifeProgress:   32.1520983,
		Precision:      4,
		YearsElapsed:   27,
		LifeExpectancy: 85,
		YearProgress:   33,
		MonthProgress:  3,
		DayProgress:    38,
		ActiveClarity:  67,
		Anniversaries: []model.AnniversaryCountdown{
			{Anniversary: model.Anniversary{Name: "Graduation"}, DaysLeft: 45},
			{Anniversary: model.Anniversary{Name: "First Home"}, DaysLeft: 1884},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "32.1521%")
	assert.Contains(t, out, "27 of 85 years")
	assert.Contains(t, out, " 33%")
	assert.Contains(t, out, "in 45 days")
	assert.Contains(t, out, "in 1,884 days")
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "today", FormatCountdown(0))
	assert.Equal(t, "tomorrow", FormatCountdown(1))
	assert.Equal(t, "yesterday", FormatCountdown(-1))
	assert.Equal(t, "3 days ago", FormatCountdown(-3))
	assert.Equal(t, "in 12 days", FormatCountdown(12))
}

func TestPrintTable(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	NewCLIFormatter(f).PrintTable([]string{"ID", "TITLE"}, []TableRow{
		{Columns: []string{"1", "Summit"}},
		{Columns: []string{"22", "冥想"}},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  TITLE", lines[0])
	assert.Equal(t, "──  ──────", lines[1])
	assert.Equal(t, "1   Summit", lines[2])
	assert.Equal(t, "22  冥想", lines[3])
}

// =============================================================================
// JSON Formatter Tests
// =============================================================================

func TestJSONPrintData(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, NewJSONFormatter(f).PrintAttributes(model.SeedAttributes(), true))

	var resp struct {
		Status string             `json:"status"`
		Data   AttributesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Peeked)
	assert.Len(t, resp.Data.Named, 6)
	assert.Equal(t, 0.7, resp.Data.Attributes.Health)
}

func TestJSONPrintError(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, NewJSONFormatter(f).PrintError(errors.Denied(errors.ErrAccessDenied)))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "ACCESS_DENIED", resp.Error)
	assert.Equal(t, "user", resp.Category)
	assert.NotEmpty(t, resp.Suggestion)
}

func TestJSONPrintLetter(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	l := model.FutureLetter{Content: "x", TargetDate: testNow.Add(time.Hour), Status: model.LetterOpen}
	require.NoError(t, NewJSONFormatter(f).PrintLetter(l))

	var resp struct {
		Data LetterResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, int64(3600), resp.Data.RemainingSeconds)
	assert.False(t, resp.Data.Arrived)
	assert.Equal(t, "x", resp.Data.Letter.Content)
}

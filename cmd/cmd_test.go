package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/chronos/internal/config"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/output"
)

// setup points the CLI at a fresh on-disk store so state carries across
// invocations within one test.
func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHRONOS_DATABASE", filepath.Join(dir, "db"))
	t.Setenv("CHRONOS_BLOBS", filepath.Join(dir, "blobs.db"))
	t.Setenv("CHRONOS_STORE_LATENCY", "0s")
	t.Setenv("CHRONOS_TIMEZONE", "UTC")
	config.Global.ReloadFromEnv()
	t.Cleanup(config.Global.Reset)
}

// run executes one CLI invocation with JSON output and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--format", "json", "--color", "never"}, args...))
	err := Execute()
	ctx = nil
	return out.String(), err
}

// runData runs args, requires success and decodes the envelope's data into v.
func runData(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)

	var env struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	require.Equal(t, "ok", env.Status)
	if v != nil {
		require.NoError(t, json.Unmarshal(env.Data, v), out)
	}
}

func TestDailyCommands(t *testing.T) {
	setup(t)

	var tasks []model.DailyTask
	runData(t, &tasks, "daily", "add", "Read", "20", "pages")
	require.Len(t, tasks, 1)
	assert.Equal(t, "Read 20 pages", tasks[0].Title)
	id := tasks[0].ID

	runData(t, &tasks, "daily", "toggle", id)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, 1, tasks[0].Streak)

	runData(t, &tasks, "daily")
	assert.True(t, tasks[0].Completed, "state persists across invocations")

	var entry model.DailyTaskHistoryEntry
	runData(t, &entry, "daily", "archive", id)
	assert.Equal(t, model.ArchiveCompleted, entry.Status)
	assert.Equal(t, 1, entry.FinalStreak)

	var history []model.DailyTaskHistoryEntry
	runData(t, &history, "daily", "history")
	require.Len(t, history, 1)

	runData(t, &history, "daily", "history", "rm", history[0].ID)
	assert.Empty(t, history)

	_, err := run(t, "daily", "history", "rm", "missing")
	assert.Error(t, err)
}

func TestLetterCommands(t *testing.T) {
	setup(t)

	var sealed output.LetterResponse
	runData(t, &sealed, "letter", "seal", "Dear", "future", "me", "--on", "+5y", "--key", ".-.-..")
	assert.Equal(t, model.LetterEncrypted, sealed.Letter.Status)

	var status map[string]model.LetterStatus
	runData(t, &status, "letter", "status")
	assert.Equal(t, model.LetterEncrypted, status["status"])

	var redacted output.LetterResponse
	runData(t, &redacted, "letter")
	assert.Equal(t, model.RedactedContent, redacted.Letter.Content)

	_, err := run(t, "letter", "open", "--", "------")
	require.Error(t, err)

	var notes []model.Notification
	runData(t, &notes, "notify", "history")
	require.NotEmpty(t, notes)
	assert.Equal(t, model.NotifyWarning, notes[0].Type, "denials are recorded")

	var opened output.LetterResponse
	runData(t, &opened, "letter", "open", ".-.-..")
	assert.Equal(t, model.LetterOpen, opened.Letter.Status)
	assert.Equal(t, "Dear future me", opened.Letter.Content)

	_, err = run(t, "letter", "seal", "too soon", "--on", "yesterday")
	assert.Error(t, err)
}

func TestAttributeCommands(t *testing.T) {
	setup(t)

	var attrs output.AttributesResponse
	runData(t, &attrs, "attrs", "--peek")
	assert.True(t, attrs.Peeked)
	assert.Len(t, attrs.Named, 6)

	var settings model.UserSettings
	runData(t, &settings, "settings", "sleep", "7.5")
	assert.InDelta(t, 7.5, settings.TodaySleepTime, 0.001)

	runData(t, &attrs, "attrs", "--peek")
	assert.Greater(t, attrs.Attributes.Health, model.SeedAttributes().Health-0.01)

	var analytics model.Analytics
	runData(t, &analytics, "analytics")
}

func TestSettingsCommands(t *testing.T) {
	setup(t)

	var shown output.SettingsResponse
	runData(t, &shown, "settings")
	assert.False(t, shown.Saved)
	assert.Equal(t, model.DefaultSettings().BirthDate, shown.Settings.BirthDate)
	assert.Equal(t, 85, shown.Progress.LifeExpectancy)
	assert.Greater(t, shown.Progress.LifeProgress, 0.0)
	assert.Len(t, shown.Progress.Anniversaries, 2)

	runData(t, nil, "settings", "sleep", "8")
	runData(t, &shown, "settings", "show")
	assert.True(t, shown.Saved)
	assert.Equal(t, 67, shown.Progress.ActiveClarity)

	var m model.TimeMetrics
	runData(t, &m, "settings", "progress")
	assert.GreaterOrEqual(t, m.YearsElapsed, 27)
	assert.LessOrEqual(t, m.DayProgress, 100)
}

func TestMilestoneCommands(t *testing.T) {
	setup(t)

	var ms []model.Milestone
	runData(t, &ms, "milestone", "add", "Run a marathon", "--year", "2027")
	last := ms[len(ms)-1]
	assert.Equal(t, "Run a marathon", last.Title)
	assert.Equal(t, model.MilestonePending, last.Status)

	runData(t, &ms, "milestone", "done", last.ID)
	assert.Equal(t, model.MilestoneCompleted, ms[len(ms)-1].Status)

	_, err := run(t, "milestone", "status", last.ID, "someday")
	assert.Error(t, err)
}

func TestAccountCommands(t *testing.T) {
	setup(t)

	var profile model.UserProfile
	runData(t, &profile, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "engine")
	assert.Equal(t, "Ada", profile.Name)

	_, err := run(t, "login", "--email", "ada@example.com", "--password", "wrong")
	assert.Error(t, err)

	runData(t, &profile, "login", "--email", "ada@example.com", "--password", "engine")
	assert.Equal(t, "Ada", profile.Name)

	runData(t, &profile, "profile", "--name", "Ada L.")
	assert.Equal(t, "Ada L.", profile.Name)
}

func TestLogCommands(t *testing.T) {
	setup(t)

	var saved model.LogEntry
	runData(t, &saved, "log", "add", "Shipped",
		"--tag", "work", "--tag", "#deep work!", "--tag", "!!!")
	assert.Equal(t, "Shipped", saved.Content)
	require.Len(t, saved.Tags, 2)
	assert.Equal(t, "#WORK", saved.Tags[0].Label)
	assert.Equal(t, "#DEEPWORK", saved.Tags[1].Label)

	var page model.LogPage
	runData(t, &page, "log", "list", "--size", "50")
	found := false
	for _, e := range page.Data {
		found = found || e.ID == saved.ID
	}
	assert.True(t, found)

	runData(t, nil, "log", "rm", saved.ID)
	_, err := run(t, "log", "rm", saved.ID)
	assert.Error(t, err)
}

func TestVersionSkipsStores(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, Execute())
	assert.Contains(t, out.String(), "chronos")
	assert.Nil(t, ctx)
}

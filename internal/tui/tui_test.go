package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/chronos/internal/model"
)

type fakeAttrs struct {
	attrs model.CoreAttributes
	peeks int
	err   error
}

func (f *fakeAttrs) Peek(context.Context) (model.CoreAttributes, error) {
	f.peeks++
	return f.attrs, f.err
}

type fakeDaily struct {
	tasks   []model.DailyTask
	toggled []string
}

func (f *fakeDaily) List(context.Context) ([]model.DailyTask, error) {
	return append([]model.DailyTask(nil), f.tasks...), nil
}

func (f *fakeDaily) Toggle(_ context.Context, id string) ([]model.DailyTask, error) {
	f.toggled = append(f.toggled, id)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
		}
	}
	return f.List(context.Background())
}

type fakeProgress struct {
	metrics model.TimeMetrics
	calls   int
}

func (f *fakeProgress) Metrics(context.Context) (model.TimeMetrics, error) {
	f.calls++
	return f.metrics, nil
}

var dashNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newDashboard(t *testing.T, notes <-chan model.Notification) (*DashboardModel, *fakeAttrs, *fakeDaily) {
	t.Helper()
	attrs := &fakeAttrs{attrs: model.SeedAttributes()}
	daily := &fakeDaily{tasks: []model.DailyTask{
		{ID: "a", Title: "Meditate"},
		{ID: "b", Title: "Read", Streak: 3},
	}}
	m := NewDashboardModel(DashboardConfig{
		Attributes:    attrs,
		Daily:         daily,
		Notifications: notes,
		Now:           func() time.Time { return dashNow },
	})
	m.Update(refreshMsg{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m, attrs, daily
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func TestDashboardLoadingView(t *testing.T) {
	m := NewDashboardModel(DashboardConfig{Attributes: &fakeAttrs{}, Daily: &fakeDaily{}})
	assert.Equal(t, "Loading...", m.View())
}

func TestDashboardRefresh(t *testing.T) {
	m, attrs, _ := newDashboard(t, nil)

	assert.Len(t, m.Tasks(), 2)
	assert.Equal(t, 1, attrs.peeks)

	view := m.View()
	assert.Contains(t, view, "Chronos")
	assert.Contains(t, view, "HEALTH")
	assert.Contains(t, view, "Meditate")
	assert.Contains(t, view, "streak 3")

	m.Update(key("r"))
	assert.Equal(t, 2, attrs.peeks)
}

func TestDashboardCursor(t *testing.T) {
	m, _, _ := newDashboard(t, nil)

	m.Update(key("up"))
	assert.Equal(t, 0, m.Cursor())
	m.Update(key("down"))
	assert.Equal(t, 1, m.Cursor())
	m.Update(key("down"))
	assert.Equal(t, 1, m.Cursor(), "cursor stays on the last task")
	m.Update(key("k"))
	assert.Equal(t, 0, m.Cursor())
	m.Update(key("j"))
	assert.Equal(t, 1, m.Cursor())
}

func TestDashboardToggle(t *testing.T) {
	m, attrs, daily := newDashboard(t, nil)

	m.Update(key("down"))
	m.Update(key(" "))

	assert.Equal(t, []string{"b"}, daily.toggled)
	assert.True(t, m.Tasks()[1].Completed)
	assert.Equal(t, 2, attrs.peeks, "toggle re-reads attributes")
	assert.Contains(t, m.View(), "1/2")
}

func TestDashboardQuit(t *testing.T) {
	m, _, _ := newDashboard(t, nil)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDashboardError(t *testing.T) {
	m, attrs, _ := newDashboard(t, nil)
	attrs.err = errors.New("store offline")

	m.Update(key("r"))
	assert.Contains(t, m.View(), "store offline")
}

func TestDashboardToast(t *testing.T) {
	notes := make(chan model.Notification, 1)
	m, _, _ := newDashboard(t, notes)

	notes <- model.Notification{Message: "Letter sealed", Type: model.NotifySuccess}
	cmd := m.listenCmd()
	require.NotNil(t, cmd)
	msg := cmd()
	_, next := m.Update(msg)
	assert.NotNil(t, next, "keeps listening after a notification")

	require.NotNil(t, m.Toast())
	assert.Contains(t, m.View(), "Letter sealed")

	// Expires on the first tick after its duration.
	dashNow = dashNow.Add(5 * time.Second)
	defer func() { dashNow = dashNow.Add(-5 * time.Second) }()
	m.Update(tickMsg(dashNow))
	assert.Nil(t, m.Toast())

	close(notes)
	assert.Nil(t, m.listenCmd()())
}

func TestDashboardLifePanel(t *testing.T) {
	progress := &fakeProgress{metrics: model.TimeMetrics{
		LifeProgress:   32.15,
		Precision:      2,
		YearsElapsed:   27,
		LifeExpectancy: 85,
		YearProgress:   33,
		Anniversaries: []model.AnniversaryCountdown{
			{Anniversary: model.Anniversary{Name: "Graduation"}, DaysLeft: 45},
			{Anniversary: model.Anniversary{Name: "Moved"}, DaysLeft: -3},
		},
	}}
	m := NewDashboardModel(DashboardConfig{
		Attributes: &fakeAttrs{attrs: model.SeedAttributes()},
		Daily:      &fakeDaily{},
		Progress:   progress,
		Now:        func() time.Time { return dashNow },
	})
	m.Update(refreshMsg{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	require.NotNil(t, m.Metrics())
	view := m.View()
	assert.Contains(t, view, "32.15%")
	assert.Contains(t, view, "27 of 85 years")
	assert.Contains(t, view, "Graduation in 45 days")
	assert.NotContains(t, view, "Moved")

	m.Update(tickMsg(dashNow))
	assert.Equal(t, 2, progress.calls, "ticks recompute progress")
}

func TestDashboardWithoutSubscription(t *testing.T) {
	m, _, _ := newDashboard(t, nil)
	assert.Nil(t, m.listenCmd())
	assert.Nil(t, m.Metrics())
}

// =============================================================================
// Component Tests
// =============================================================================

func TestAttributesComponentView(t *testing.T) {
	ac := NewAttributesComponent(model.SeedAttributes(), 80)
	view := ac.View()

	for _, name := range []string{"HEALTH", "MIND", "SKILL", "SOCIAL", "ADVENTURE", "SPIRIT"} {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "70%")
	assert.NotContains(t, view, "Refreshed")

	ac.Refreshed = dashNow.Add(-time.Minute)
	ac.Now = dashNow
	assert.Contains(t, ac.View(), "Refreshed 1 minute ago")
}

func TestDailyComponentView(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		view := NewDailyComponent(nil, 0, 80).View()
		assert.Contains(t, view, "No daily tasks")
		assert.Contains(t, view, "0/0")
	})

	t.Run("with_tasks", func(t *testing.T) {
		tasks := []model.DailyTask{
			{ID: "a", Title: "Meditate", Completed: true, Streak: 2},
			{ID: "b", Title: "Read"},
		}
		view := NewDailyComponent(tasks, 1, 80).View()
		assert.Contains(t, view, "1/2")
		assert.Contains(t, view, "[✓]")
		assert.Contains(t, view, "> ")
		assert.Contains(t, view, "streak 2")
	})

	t.Run("small_width", func(t *testing.T) {
		assert.NotEmpty(t, NewDailyComponent(nil, 0, 10).View())
	})
}

func TestToastComponentView(t *testing.T) {
	tc := &ToastComponent{Notification: model.Notification{Message: "ACCESS_DENIED", Type: model.NotifyWarning}}
	view := tc.View()
	assert.Contains(t, view, "ACCESS_DENIED")
	assert.Contains(t, view, "!")
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
		{"zero_width", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, ProgressBar(tt.percentage, tt.width))
		})
	}
}

func TestProgressBarWidth(t *testing.T) {
	// Longer width should produce longer bar
	assert.Greater(t, len(ProgressBar(50, 20)), len(ProgressBar(50, 10)))
}

// =============================================================================
// HelpBar Tests
// =============================================================================

func TestHelpBar(t *testing.T) {
	bar := HelpBar()

	assert.Contains(t, bar, "move")
	assert.Contains(t, bar, "toggle")
	assert.Contains(t, bar, "refresh")
	assert.Contains(t, bar, "quit")
}

package planner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGrower struct {
	mu    sync.Mutex
	calls []model.Growth
}

func (g *recordingGrower) ApplyGrowth(_ context.Context, delta model.Growth) (model.CoreAttributes, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, delta)
	return model.SeedAttributes(), nil
}

func setupTestPlanner(t *testing.T) (*Planner, *recordingGrower) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := storage.NewRecordStore(db, storage.RecordOptions{Latency: time.Millisecond})

	grower := &recordingGrower{}
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return New(store, grower, WithClock(func() time.Time { return now }), WithLocation(time.UTC)), grower
}

// =============================================================================
// Settings Tests
// =============================================================================

func TestSettingsSeed(t *testing.T) {
	p, _ := setupTestPlanner(t)

	s, err := p.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), s)
}

func TestSleepGrowth(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		grows bool
	}{
		{"lower_edge", 7, true},
		{"middle", 8, true},
		{"upper_edge", 9, true},
		{"short", 6.9, false},
		{"long", 9.5, false},
		{"none", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, grower := setupTestPlanner(t)

			s, err := p.LogSleep(context.Background(), tt.hours)
			require.NoError(t, err)
			assert.Equal(t, tt.hours, s.TodaySleepTime)

			if tt.grows {
				require.Len(t, grower.calls, 1)
				assert.Equal(t, model.Growth{Health: 0.05}, grower.calls[0])
			} else {
				assert.Empty(t, grower.calls)
			}
		})
	}
}

func TestUpdateSettingsPersists(t *testing.T) {
	p, _ := setupTestPlanner(t)
	ctx := context.Background()

	s := model.DefaultSettings()
	s.Language = "en"
	s.Anniversaries = nil
	_, err := p.UpdateSettings(ctx, s)
	require.NoError(t, err)

	got, err := p.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.NotNil(t, got.Anniversaries)
}

func TestUpdateSettingsRejectsBadSleep(t *testing.T) {
	p, grower := setupTestPlanner(t)

	_, err := p.LogSleep(context.Background(), 30)
	assert.True(t, errors.IsUserError(err))
	assert.Empty(t, grower.calls)
}

// =============================================================================
// Milestone Tests
// =============================================================================

func TestCompletingMilestoneGrows(t *testing.T) {
	p, grower := setupTestPlanner(t)
	ctx := context.Background()

	ms, err := p.SetMilestoneStatus(ctx, "2", model.MilestoneCompleted)
	require.NoError(t, err)
	assert.Equal(t, 2, model.CountCompleted(ms))

	require.Len(t, grower.calls, 1)
	assert.Equal(t, model.Growth{Adventure: 0.15, Skill: 0.15}, grower.calls[0])
}

func TestSaveWithoutNewCompletionDoesNotGrow(t *testing.T) {
	p, grower := setupTestPlanner(t)
	ctx := context.Background()

	_, err := p.SetMilestoneStatus(ctx, "1", model.MilestonePending)
	require.NoError(t, err)

	ms, err := p.Milestones(ctx)
	require.NoError(t, err)
	ms[1].Title = "Master Piano"
	_, err = p.SaveMilestones(ctx, ms)
	require.NoError(t, err)

	assert.Empty(t, grower.calls)
}

func TestAddMilestone(t *testing.T) {
	p, _ := setupTestPlanner(t)
	ctx := context.Background()

	ms, err := p.AddMilestone(ctx, "  Run a marathon ", "Health", "2030")
	require.NoError(t, err)
	require.Len(t, ms, len(model.DefaultMilestones())+1)

	added := ms[len(ms)-1]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Run a marathon", added.Title)
	assert.Equal(t, "2030", added.Date)
	assert.Equal(t, model.MilestonePending, added.Status)

	_, err = p.AddMilestone(ctx, "", "", "")
	assert.Error(t, err)
	_, err = p.AddMilestone(ctx, "x", "", "30")
	assert.Error(t, err)
}

func TestSetMilestoneStatusErrors(t *testing.T) {
	p, _ := setupTestPlanner(t)
	ctx := context.Background()

	_, err := p.SetMilestoneStatus(ctx, "missing", model.MilestoneCompleted)
	assert.ErrorIs(t, err, errors.ErrMilestoneNotFound)

	_, err = p.SetMilestoneStatus(ctx, "1", "someday")
	assert.True(t, errors.IsUserError(err))
}

func TestSaveMilestonesRejectsBadStatus(t *testing.T) {
	p, _ := setupTestPlanner(t)

	_, err := p.SaveMilestones(context.Background(), []model.Milestone{{ID: "x", Title: "x", Status: "nope"}})
	assert.True(t, errors.IsUserError(err))
}

// =============================================================================
// Metrics Tests
// =============================================================================

func TestLifeExpectancyPresets(t *testing.T) {
	tests := []struct {
		preset string
		custom int
		want   int
	}{
		{model.PresetAverage, 120, 73},
		{model.PresetHealthy, 60, 95},
		{model.PresetCustom, 100, 100},
		{model.PresetCustom, 0, model.DefaultLifeExpectancy},
		{"", 70, 70},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			s := model.UserSettings{LifeExpectancyPreset: tt.preset, CustomLifeExpectancy: tt.custom}
			assert.Equal(t, tt.want, s.LifeExpectancy())
		})
	}
}

func TestMetricsFromSeed(t *testing.T) {
	p, _ := setupTestPlanner(t)

	m, err := p.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 85, m.LifeExpectancy)
	assert.InDelta(t, 32.152098, m.LifeProgress, 1e-5)
	assert.Equal(t, 27, m.YearsElapsed)
	assert.Equal(t, 33, m.YearProgress)
	assert.Equal(t, 3, m.MonthProgress)
	assert.Equal(t, 38, m.DayProgress)
	assert.Equal(t, 67, m.ActiveClarity)
	assert.Equal(t, "32.152098%", m.LifeProgressText())

	require.Len(t, m.Anniversaries, 2)
	assert.Equal(t, "Graduation", m.Anniversaries[0].Name)
	assert.Equal(t, 45, m.Anniversaries[0].DaysLeft)
	assert.Equal(t, 884, m.Anniversaries[1].DaysLeft)
}

func TestComputeMetricsPresets(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := model.DefaultSettings()

	s.LifeExpectancyPreset = model.PresetAverage
	m, err := ComputeMetrics(s, now)
	require.NoError(t, err)
	assert.InDelta(t, 37.437375, m.LifeProgress, 1e-5)

	s.LifeExpectancyPreset = model.PresetHealthy
	m, err = ComputeMetrics(s, now)
	require.NoError(t, err)
	assert.InDelta(t, 28.767667, m.LifeProgress, 1e-5)
}

func TestComputeMetricsBirthdayCycle(t *testing.T) {
	s := model.DefaultSettings()
	s.BirthDate = "1990-06-15"
	s.BirthTime = ""
	s.Anniversaries = []model.Anniversary{{ID: "1", Name: "Past", Date: "2026-04-30"}}

	// The day before a birthday is nearly a full cycle.
	m, err := ComputeMetrics(s, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 100, m.YearProgress)
	assert.Equal(t, 35, m.YearsElapsed)
	assert.Equal(t, -45, m.Anniversaries[0].DaysLeft)

	m, err = ComputeMetrics(s, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, m.YearProgress)
	assert.Equal(t, 0, m.DayProgress)
	assert.Equal(t, 50, m.MonthProgress)
}

func TestComputeMetricsPrecisionClamped(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := model.DefaultSettings()

	s.DecimalPrecision = 0
	m, err := ComputeMetrics(s, now)
	require.NoError(t, err)
	assert.Equal(t, "32%", m.LifeProgressText())

	s.DecimalPrecision = 40
	m, err = ComputeMetrics(s, now)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Precision)
}

func TestComputeMetricsRejectsBadDates(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		edit func(s *model.UserSettings)
	}{
		{"birth_date", func(s *model.UserSettings) { s.BirthDate = "01/01/1999" }},
		{"birth_time", func(s *model.UserSettings) { s.BirthTime = "8.30" }},
		{"anniversary", func(s *model.UserSettings) { s.Anniversaries[0].Date = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.DefaultSettings()
			tt.edit(&s)
			_, err := ComputeMetrics(s, now)
			assert.True(t, errors.IsUserError(err))
		})
	}
}

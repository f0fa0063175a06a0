// Package planner manages the time-allocation settings and the long-term
// milestones, granting attribute growth when either improves.
package planner

import (
	"context"
	"strconv"
	"time"

	"github.com/manav03panchal/chronos/internal/attributes"
	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
	"github.com/manav03panchal/chronos/internal/validate"
)

// Grower applies attribute growth.
type Grower interface {
	ApplyGrowth(ctx context.Context, g model.Growth) (model.CoreAttributes, error)
}

// Planner owns the settings and milestones namespaces.
type Planner struct {
	store  *storage.RecordStore
	grower Grower
	policy attributes.Policy
	now    func() time.Time
	loc    *time.Location
}

// Option configures a Planner.
type Option func(*Planner)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithLocation sets the zone calendar progress is computed in.
func WithLocation(loc *time.Location) Option {
	return func(p *Planner) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithPolicy overrides the growth policy.
func WithPolicy(pol attributes.Policy) Option {
	return func(p *Planner) { p.policy = pol }
}

// New creates a planner. grower may be nil.
func New(store *storage.RecordStore, grower Grower, opts ...Option) *Planner {
	p := &Planner{
		store:  store,
		grower: grower,
		policy: attributes.DefaultPolicy(),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) grow(ctx context.Context, g model.Growth) error {
	if p.grower == nil || g.IsZero() {
		return nil
	}
	_, err := p.grower.ApplyGrowth(ctx, g)
	return err
}

// Settings returns the current settings.
func (p *Planner) Settings(ctx context.Context) (model.UserSettings, error) {
	return storage.Get[model.UserSettings](ctx, p.store, model.NSSettings)
}

// UpdateSettings replaces the settings. A sleep time inside the healthy
// band grants growth before the record is written.
func (p *Planner) UpdateSettings(ctx context.Context, s model.UserSettings) (model.UserSettings, error) {
	if err := validate.SleepHours(s.TodaySleepTime); err != nil {
		return model.UserSettings{}, err
	}
	if s.Anniversaries == nil {
		s.Anniversaries = []model.Anniversary{}
	}
	if err := p.grow(ctx, p.policy.ForSleep(s.TodaySleepTime)); err != nil {
		return model.UserSettings{}, err
	}
	return storage.Put(ctx, p.store, model.NSSettings, s)
}

// LogSleep records last night's sleep.
func (p *Planner) LogSleep(ctx context.Context, hours float64) (model.UserSettings, error) {
	s, err := p.Settings(ctx)
	if err != nil {
		return model.UserSettings{}, err
	}
	s.TodaySleepTime = hours
	return p.UpdateSettings(ctx, s)
}

// Milestones returns every milestone.
func (p *Planner) Milestones(ctx context.Context) ([]model.Milestone, error) {
	return storage.Get[[]model.Milestone](ctx, p.store, model.NSMilestones)
}

// SaveMilestones replaces the milestone list. Growth is granted when the
// number of completed milestones goes up.
func (p *Planner) SaveMilestones(ctx context.Context, list []model.Milestone) ([]model.Milestone, error) {
	for _, m := range list {
		if _, err := model.ParseMilestoneStatus(string(m.Status)); err != nil {
			return nil, errors.NewUserErrorWithField("status", string(m.Status),
				"Invalid milestone status", "Use completed, pending, long-term or missed")
		}
	}
	if list == nil {
		list = []model.Milestone{}
	}

	var before int
	saved, err := storage.Update(ctx, p.store, model.NSMilestones,
		func(cur []model.Milestone) ([]model.Milestone, bool, error) {
			before = model.CountCompleted(cur)
			return list, true, nil
		})
	if err != nil {
		return nil, err
	}

	after := model.CountCompleted(saved)
	logging.DebugContext(ctx, "milestones saved", logging.KeyCount, len(saved), "completed", after)
	if err := p.grow(ctx, p.policy.ForMilestones(before, after)); err != nil {
		return saved, err
	}
	return saved, nil
}

// AddMilestone appends a pending milestone. year may be empty.
func (p *Planner) AddMilestone(ctx context.Context, title, category, year string) ([]model.Milestone, error) {
	title = validate.SanitizeTitle(title)
	if err := validate.Title("title", title); err != nil {
		return nil, err
	}
	if year != "" {
		if _, err := strconv.Atoi(year); err != nil || len(year) != 4 {
			return nil, errors.NewUserErrorWithField("year", year, "Invalid year", "Use a four digit year like 2030")
		}
	}
	m := model.Milestone{
		ID:       model.NewID(p.now()),
		Title:    title,
		Date:     year,
		Status:   model.MilestonePending,
		Category: category,
	}
	return storage.Update(ctx, p.store, model.NSMilestones,
		func(cur []model.Milestone) ([]model.Milestone, bool, error) {
			return append(cur, m), true, nil
		})
}

// SetMilestoneStatus changes the status of one milestone.
func (p *Planner) SetMilestoneStatus(ctx context.Context, id string, status model.MilestoneStatus) ([]model.Milestone, error) {
	if _, err := model.ParseMilestoneStatus(string(status)); err != nil {
		return nil, errors.NewUserErrorWithField("status", string(status),
			"Invalid milestone status", "Use completed, pending, long-term or missed")
	}
	cur, err := p.Milestones(ctx)
	if err != nil {
		return nil, err
	}
	next := make([]model.Milestone, len(cur))
	copy(next, cur)
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NotFound(errors.ErrMilestoneNotFound, id)
	}
	return p.SaveMilestones(ctx, next)
}

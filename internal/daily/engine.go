// Package daily manages recurring habit records.
//
// Completion flags reset lazily: the first List after a calendar-day
// boundary clears every flag whose last check-in happened on an earlier day
// and persists the corrected collection. Streaks survive the reset, so a
// streak counts successful check-ins across days rather than today's state.
package daily

import (
	"context"
	"strings"
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

// Engine owns the daily_tasks and daily_history namespaces.
type Engine struct {
	store   *storage.RecordStore
	grower  Grower
	checkIn model.Growth
	loc     *time.Location
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the zone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithCheckInGrowth overrides the growth granted when a task is toggled on.
func WithCheckInGrowth(g model.Growth) Option {
	return func(e *Engine) { e.checkIn = g }
}

// New creates a daily task engine. grower may be nil, in which case
// check-ins grant nothing.
func New(store *storage.RecordStore, grower Grower, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		grower:  grower,
		checkIn: attributes.DefaultPolicy().ForCheckIn(),
		loc:     time.Local,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current calendar-day key.
func (e *Engine) Today() string {
	return model.DayKey(e.now(), e.loc)
}

// List returns the active tasks with rollover applied.
func (e *Engine) List(ctx context.Context) ([]model.DailyTask, error) {
	today := e.Today()
	return storage.Update(ctx, e.store, model.NSDailyTasks,
		func(cur []model.DailyTask) ([]model.DailyTask, bool, error) {
			changed := e.rollover(cur, today)
			if changed > 0 {
				logging.DebugContext(ctx, "daily rollover", logging.KeyCount, changed, "day", today)
			}
			return cur, changed > 0, nil
		})
}

// Add appends a new task and returns the updated collection.
func (e *Engine) Add(ctx context.Context, title string) ([]model.DailyTask, error) {
	title = strings.TrimSpace(title)
	if err := validate.Title("title", title); err != nil {
		return nil, err
	}
	today := e.Today()
	task := model.DailyTask{
		ID:    model.NewID(e.now()),
		Title: title,
	}
	return storage.Update(ctx, e.store, model.NSDailyTasks,
		func(cur []model.DailyTask) ([]model.DailyTask, bool, error) {
			e.rollover(cur, today)
			return append(cur, task), true, nil
		})
}

// Toggle flips the completion flag of id. Checking in increments the streak,
// stamps the check-in time and grants growth; unchecking decrements the
// streak (never below zero) and keeps the previous check-in time.
func (e *Engine) Toggle(ctx context.Context, id string) ([]model.DailyTask, error) {
	now := e.now()
	today := model.DayKey(now, e.loc)
	checkedIn := false

	tasks, err := storage.Update(ctx, e.store, model.NSDailyTasks,
		func(cur []model.DailyTask) ([]model.DailyTask, bool, error) {
			e.rollover(cur, today)
			i := indexOf(cur, id)
			if i < 0 {
				return cur, false, errors.NotFound(errors.ErrTaskNotFound, id)
			}
			t := &cur[i]
			t.Completed = !t.Completed
			if t.Completed {
				t.Streak++
				stamp := now.UTC()
				t.LastCompleted = &stamp
				checkedIn = true
			} else {
				t.Streak = max(0, t.Streak-1)
			}
			return cur, true, nil
		})
	if err != nil {
		return nil, err
	}

	logging.DebugContext(ctx, "daily toggle", logging.KeyTaskID, id, "completed", checkedIn)
	if checkedIn && e.grower != nil && !e.checkIn.IsZero() {
		if _, err := e.grower.ApplyGrowth(ctx, e.checkIn); err != nil {
			return tasks, err
		}
	}
	return tasks, nil
}

// Archive moves id into the history with the given outcome. It returns nil
// without error when id is not an active task.
//
// The history entry is persisted before the task leaves the active set, so
// a failed task write leaves the task active with its entry already
// recorded. Entries are keyed by task, and a retry reuses that entry
// instead of adding a second one.
func (e *Engine) Archive(ctx context.Context, id string, status model.ArchiveStatus) (*model.DailyTaskHistoryEntry, error) {
	if !status.Valid() {
		return nil, errors.NewUserErrorWithField("status", string(status),
			"Invalid archive outcome", "Use 'completed' or 'aborted'")
	}
	now := e.now()
	var entry *model.DailyTaskHistoryEntry

	_, err := storage.Update(ctx, e.store, model.NSDailyTasks,
		func(cur []model.DailyTask) ([]model.DailyTask, bool, error) {
			i := indexOf(cur, id)
			if i < 0 {
				return cur, false, nil
			}
			task := cur[i]
			h := model.DailyTaskHistoryEntry{
				ID:          model.NewID(now),
				TaskID:      task.ID,
				Title:       task.Title,
				Status:      status,
				Timestamp:   now.UTC(),
				FinalStreak: task.Streak,
			}
			_, err := storage.Update(ctx, e.store, model.NSDailyHistory,
				func(hist []model.DailyTaskHistoryEntry) ([]model.DailyTaskHistoryEntry, bool, error) {
					for _, prev := range hist {
						if prev.TaskID == task.ID {
							h = prev
							return hist, false, nil
						}
					}
					return append([]model.DailyTaskHistoryEntry{h}, hist...), true, nil
				})
			if err != nil {
				return cur, false, err
			}
			entry = &h
			return append(cur[:i:i], cur[i+1:]...), true, nil
		})
	if err != nil {
		return nil, err
	}
	if entry != nil {
		logging.DebugContext(ctx, "daily archive", logging.KeyTaskID, id, logging.KeyStatus, string(status))
	}
	return entry, nil
}

// History returns the archived tasks, newest first.
func (e *Engine) History(ctx context.Context) ([]model.DailyTaskHistoryEntry, error) {
	return storage.Get[[]model.DailyTaskHistoryEntry](ctx, e.store, model.NSDailyHistory)
}

// DeleteHistory removes one history entry and returns the remaining ones.
func (e *Engine) DeleteHistory(ctx context.Context, id string) ([]model.DailyTaskHistoryEntry, error) {
	return storage.Update(ctx, e.store, model.NSDailyHistory,
		func(cur []model.DailyTaskHistoryEntry) ([]model.DailyTaskHistoryEntry, bool, error) {
			for i, h := range cur {
				if h.ID == id {
					return append(cur[:i:i], cur[i+1:]...), true, nil
				}
			}
			return cur, false, errors.NotFound(errors.ErrHistoryNotFound, id)
		})
}

// rollover clears completion flags not earned today and returns how many
// tasks changed.
func (e *Engine) rollover(tasks []model.DailyTask, today string) int {
	changed := 0
	for i := range tasks {
		if tasks[i].Completed && !tasks[i].CompletedOn(today, e.loc) {
			tasks[i].Completed = false
			changed++
		}
	}
	return changed
}

func indexOf(tasks []model.DailyTask, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

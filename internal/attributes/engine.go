// Package attributes maintains the decaying character sheet.
//
// Reading the sheet through Tick advances the decay baseline: the elapsed
// hours since the last sync are multiplied by the entropy rate, subtracted
// from every scalar (floored at model.AttributeMin), and the result is
// persisted together with a fresh sync timestamp. Peek computes the same
// value without persisting anything.
package attributes

import (
	"context"
	"sync"
	"time"

	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
)

// DefaultEntropyRate is the decay per elapsed hour.
const DefaultEntropyRate = 0.002

// DefaultBooksRead is the reading figure shown in the analytics report.
const DefaultBooksRead = 12

// Engine owns the core_attributes and attributes_sync namespaces.
type Engine struct {
	store     *storage.RecordStore
	rate      float64
	booksRead int
	now       func() time.Time

	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithEntropyRate overrides the decay per hour. Negative rates are ignored.
func WithEntropyRate(rate float64) Option {
	return func(e *Engine) {
		if rate >= 0 {
			e.rate = rate
		}
	}
}

// New creates an attribute engine over store.
func New(store *storage.RecordStore, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		rate:      DefaultEntropyRate,
		booksRead: DefaultBooksRead,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick returns the decay-adjusted attributes and persists them as the new
// baseline.
func (e *Engine) Tick(ctx context.Context) (model.CoreAttributes, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick(ctx)
}

// Peek returns the decay-adjusted attributes without advancing the baseline.
func (e *Engine) Peek(ctx context.Context) (model.CoreAttributes, error) {
	attrs, _, err := e.active(ctx)
	return attrs, err
}

// ApplyGrowth ticks, adds g to the result (capped at model.AttributeMax) and
// persists it.
func (e *Engine) ApplyGrowth(ctx context.Context, g model.Growth) (model.CoreAttributes, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	attrs, err := e.tick(ctx)
	if err != nil {
		return attrs, err
	}
	grown := attrs.Grow(g)
	if _, err := storage.Put(ctx, e.store, model.NSAttributes, grown); err != nil {
		return attrs, err
	}
	logging.DebugContext(ctx, "attributes grown",
		"health", g.Health, "mind", g.Mind, "skill", g.Skill,
		"social", g.Social, "adventure", g.Adventure, "spirit", g.Spirit)
	return grown, nil
}

// Analytics ticks and derives the analytics report.
func (e *Engine) Analytics(ctx context.Context) (model.Analytics, error) {
	attrs, err := e.Tick(ctx)
	if err != nil {
		return model.Analytics{}, err
	}
	return model.NewAnalytics(attrs, e.booksRead), nil
}

func (e *Engine) tick(ctx context.Context) (model.CoreAttributes, error) {
	attrs, now, err := e.active(ctx)
	if err != nil {
		return attrs, err
	}
	if _, err := storage.Put(ctx, e.store, model.NSAttributes, attrs); err != nil {
		return attrs, err
	}
	if _, err := storage.Put(ctx, e.store, model.NSAttributeSync, model.AttributeSync{LastSync: now}); err != nil {
		return attrs, err
	}
	return attrs, nil
}

// active computes the decayed snapshot as of now.
func (e *Engine) active(ctx context.Context) (model.CoreAttributes, time.Time, error) {
	now := e.now()
	attrs, err := storage.Get[model.CoreAttributes](ctx, e.store, model.NSAttributes)
	if err != nil {
		return attrs, now, err
	}
	rec, found, err := storage.Lookup[model.AttributeSync](ctx, e.store, model.NSAttributeSync)
	if err != nil {
		return attrs, now, err
	}
	last := now
	if found && !rec.LastSync.IsZero() {
		last = rec.LastSync
	}

	hours := now.Sub(last).Hours()
	if hours < 0 {
		hours = 0
	}
	return attrs.Decay(hours * e.rate), now, nil
}

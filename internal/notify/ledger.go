// Package notify provides the notification ledger: a bounded, persisted
// history of system messages plus live delivery to whoever is listening.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
)

// DefaultCapacity is the number of history entries kept.
const DefaultCapacity = 50

// DefaultBuffer is the channel buffer handed to subscribers.
const DefaultBuffer = 16

// Callback receives a live notification synchronously.
type Callback func(message string, t model.NotificationType)

// Ledger owns the notification_history namespace.
type Ledger struct {
	store    *storage.RecordStore
	capacity int
	now      func() time.Time

	mu       sync.Mutex
	callback Callback
	subs     map[int]chan model.Notification
	nextSub  int
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithCapacity overrides the history bound. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a ledger over store.
func New(store *storage.RecordStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		capacity: DefaultCapacity,
		now:      time.Now,
		subs:     make(map[int]chan model.Notification),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Notify appends message to the history and delivers it live. The history
// entry is written even when nobody is listening. A store failure is
// returned after live delivery has happened. Types other than info,
// success and warning are rejected before anything is recorded.
func (l *Ledger) Notify(ctx context.Context, message string, t model.NotificationType) error {
	if _, err := model.ParseNotificationType(string(t)); err != nil {
		return errors.NewUserErrorWithField("type", string(t),
			"Invalid notification type", "Use info, success or warning")
	}
	now := l.now()
	n := model.Notification{
		ID:        model.NewID(now),
		Message:   message,
		Type:      t,
		Timestamp: now.UTC(),
	}

	_, err := storage.Update(ctx, l.store, model.NSNotifications,
		func(cur []model.Notification) ([]model.Notification, bool, error) {
			next := make([]model.Notification, 0, min(len(cur)+1, l.capacity))
			next = append(next, n)
			for _, old := range cur {
				if len(next) == l.capacity {
					break
				}
				next = append(next, old)
			}
			return next, true, nil
		})

	if t == model.NotifyWarning {
		logging.WarnContext(ctx, message, logging.KeyStatus, string(t))
	} else {
		logging.InfoContext(ctx, message, logging.KeyStatus, string(t))
	}

	l.dispatch(n)
	return err
}

// Info is shorthand for Notify with NotifyInfo.
func (l *Ledger) Info(ctx context.Context, message string) error {
	return l.Notify(ctx, message, model.NotifyInfo)
}

// Success is shorthand for Notify with NotifySuccess.
func (l *Ledger) Success(ctx context.Context, message string) error {
	return l.Notify(ctx, message, model.NotifySuccess)
}

// Warning is shorthand for Notify with NotifyWarning.
func (l *Ledger) Warning(ctx context.Context, message string) error {
	return l.Notify(ctx, message, model.NotifyWarning)
}

// Report surfaces identity, access and signal failures as warnings.
// Other errors are left to the caller. It reports whether err was routed.
func (l *Ledger) Report(ctx context.Context, err error) bool {
	if !errors.IsDenial(err) {
		return false
	}
	if nerr := l.Warning(ctx, err.Error()); nerr != nil {
		logging.WarnContext(ctx, "notification not persisted", logging.KeyError, nerr)
	}
	return true
}

// History returns the persisted notifications, newest first.
func (l *Ledger) History(ctx context.Context) ([]model.Notification, error) {
	return storage.Get[[]model.Notification](ctx, l.store, model.NSNotifications)
}

// Clear wipes the persisted history.
func (l *Ledger) Clear(ctx context.Context) error {
	return l.store.Remove(ctx, model.NSNotifications)
}

// SetCallback installs the single synchronous callback, replacing any
// previous one. A nil callback detaches it.
func (l *Ledger) SetCallback(cb Callback) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callback = cb
}

// Subscribe returns a channel receiving every future notification and a
// function that detaches it. Delivery never blocks: when the buffer is full
// the live copy is dropped, the history entry is not.
func (l *Ledger) Subscribe(buffer int) (<-chan model.Notification, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan model.Notification, buffer)

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of attached channels.
func (l *Ledger) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

func (l *Ledger) dispatch(n model.Notification) {
	l.mu.Lock()
	cb := l.callback
	for _, ch := range l.subs {
		select {
		case ch <- n:
		default:
		}
	}
	l.mu.Unlock()

	if cb != nil {
		cb(n.Message, n.Type)
	}
}

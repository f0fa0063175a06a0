// Package journal manages log entries and the voice notes attached to them.
//
// Voice payloads live in the blob store; an entry only embeds the blob URI.
// The blob store never collects garbage, so Delete is responsible for
// removing the payload of the entry it deletes.
package journal

import (
	"context"
	"strings"
	"time"

	"github.com/manav03panchal/chronos/internal/attributes"
	"github.com/manav03panchal/chronos/internal/blob"
	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
	"github.com/manav03panchal/chronos/internal/validate"
)

// MaxPageSize bounds Page.
const MaxPageSize = 100

// Blobs is the part of the blob store the journal needs.
type Blobs interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, uri string) ([]byte, bool, error)
	Remove(ctx context.Context, uri string) error
}

// Grower applies attribute growth.
type Grower interface {
	ApplyGrowth(ctx context.Context, g model.Growth) (model.CoreAttributes, error)
}

// Journal owns the logs namespace.
type Journal struct {
	store  *storage.RecordStore
	blobs  Blobs
	grower Grower
	policy attributes.Policy
	loc    *time.Location
	now    func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithLocation sets the zone display dates are stamped in.
func WithLocation(loc *time.Location) Option {
	return func(j *Journal) {
		if loc != nil {
			j.loc = loc
		}
	}
}

// WithPolicy overrides the growth policy.
func WithPolicy(p attributes.Policy) Option {
	return func(j *Journal) { j.policy = p }
}

// New creates a journal. grower may be nil.
func New(store *storage.RecordStore, blobs Blobs, grower Grower, opts ...Option) *Journal {
	j := &Journal{
		store:  store,
		blobs:  blobs,
		grower: grower,
		policy: attributes.DefaultPolicy(),
		loc:    time.Local,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// List returns every entry, newest first.
func (j *Journal) List(ctx context.Context) ([]model.LogEntry, error) {
	return storage.Get[[]model.LogEntry](ctx, j.store, model.NSLogs)
}

// Page returns one zero-based page of the journal. It reads the whole
// collection and slices it.
func (j *Journal) Page(ctx context.Context, page, size int) (model.LogPage, error) {
	if page < 0 {
		return model.LogPage{}, errors.NewUserErrorWithField("page", "", "Page cannot be negative", "Pages start at 0")
	}
	if err := validate.InRange("size", size, 1, MaxPageSize); err != nil {
		return model.LogPage{}, err
	}
	logs, err := j.List(ctx)
	if err != nil {
		return model.LogPage{}, err
	}
	return model.PageLogs(logs, page, size), nil
}

// Get returns one entry.
func (j *Journal) Get(ctx context.Context, id string) (model.LogEntry, error) {
	logs, err := j.List(ctx)
	if err != nil {
		return model.LogEntry{}, err
	}
	for _, e := range logs {
		if e.ID == id {
			return e, nil
		}
	}
	return model.LogEntry{}, errors.NotFound(errors.ErrLogNotFound, id)
}

// Save prepends entry to the journal, filling in its id and display stamp,
// and grants the growth the policy assigns to it.
func (j *Journal) Save(ctx context.Context, entry model.LogEntry) (model.LogEntry, error) {
	entry.Content = validate.SanitizeContent(entry.Content)
	if err := validate.Content(entry.Content); err != nil {
		return model.LogEntry{}, err
	}
	for _, img := range entry.Images {
		if err := validate.ImageRef(img); err != nil {
			return model.LogEntry{}, err
		}
	}
	for _, tag := range entry.Tags {
		if err := validate.Tag(tag.Label); err != nil {
			return model.LogEntry{}, err
		}
	}
	if entry.VoiceData != "" {
		entry.HasVoice = true
	}

	now := j.now()
	if entry.ID == "" {
		entry.ID = model.NewID(now)
	}
	entry.Stamp(now.In(j.loc))

	_, err := storage.Update(ctx, j.store, model.NSLogs,
		func(cur []model.LogEntry) ([]model.LogEntry, bool, error) {
			return append([]model.LogEntry{entry}, cur...), true, nil
		})
	if err != nil {
		return model.LogEntry{}, err
	}
	logging.DebugContext(ctx, "log saved", logging.KeyLogID, entry.ID, "voice", entry.HasVoice, "images", len(entry.Images))

	if j.grower != nil {
		if g := j.policy.ForLog(entry); !g.IsZero() {
			if _, err := j.grower.ApplyGrowth(ctx, g); err != nil {
				return entry, err
			}
		}
	}
	return entry, nil
}

// Delete removes an entry. When its voice data is a blob URI the payload
// is removed from the blob store first; entries without one never touch
// the blob store.
func (j *Journal) Delete(ctx context.Context, id string) error {
	_, err := storage.Update(ctx, j.store, model.NSLogs,
		func(cur []model.LogEntry) ([]model.LogEntry, bool, error) {
			for i, e := range cur {
				if e.ID != id {
					continue
				}
				if blob.IsURI(e.VoiceData) {
					if err := j.blobs.Remove(ctx, e.VoiceData); err != nil {
						return cur, false, err
					}
				}
				return append(cur[:i:i], cur[i+1:]...), true, nil
			}
			return cur, false, errors.NotFound(errors.ErrLogNotFound, id)
		})
	if err != nil {
		return err
	}
	logging.DebugContext(ctx, "log deleted", logging.KeyLogID, id)
	return nil
}

// Voice is the voice-note part of a log entry.
type Voice struct {
	URI      string
	Duration string
}

// Apply embeds the voice note into entry.
func (v Voice) Apply(entry *model.LogEntry) {
	entry.HasVoice = true
	entry.VoiceData = v.URI
	entry.Duration = v.Duration
}

// AttachVoice stores a recording in the blob store. The returned Voice
// must be embedded in an entry and saved, or the payload leaks.
func (j *Journal) AttachVoice(ctx context.Context, data []byte, length time.Duration) (Voice, error) {
	if len(data) == 0 {
		return Voice{}, errors.NewUserError("Voice recording is empty", "Record something first")
	}
	uri, err := j.blobs.Put(ctx, data)
	if err != nil {
		return Voice{}, err
	}
	return Voice{URI: uri, Duration: model.FormatClock(length)}, nil
}

// Playback returns the recording of entry id. ok is false when the entry
// has no recording or its payload is gone; a miss is not an error.
func (j *Journal) Playback(ctx context.Context, id string) (data []byte, ok bool, err error) {
	entry, err := j.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(entry.VoiceData) == "" {
		return nil, false, nil
	}
	return j.blobs.Get(ctx, entry.VoiceData)
}

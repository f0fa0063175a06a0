// Package letter implements the future letter vault: a single message that
// stays redacted until the caller presents the shared key. The target date
// only drives the countdown; the key alone gates disclosure.
package letter

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
	"github.com/manav03panchal/chronos/internal/validate"
)

// DefaultKeyLength is the number of symbols in a generated key.
const DefaultKeyLength = 6

// KeySymbols are the symbols generated keys are drawn from.
const KeySymbols = ".-"

// Vault owns the future_letter namespace.
type Vault struct {
	store     *storage.RecordStore
	keyLength int
	now       func() time.Time
}

// Option configures a Vault.
type Option func(*Vault)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(v *Vault) { v.now = now }
}

// WithKeyLength overrides the generated key length.
func WithKeyLength(n int) Option {
	return func(v *Vault) {
		if n > 0 {
			v.keyLength = n
		}
	}
}

// New creates a vault over store.
func New(store *storage.RecordStore, opts ...Option) *Vault {
	v := &Vault{
		store:     store,
		keyLength: DefaultKeyLength,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Save seals a new letter, replacing any previous one. An empty key is
// replaced by a generated pattern. The returned record carries the key so
// the caller can show it once.
func (v *Vault) Save(ctx context.Context, content string, target time.Time, key string) (model.FutureLetter, error) {
	if err := validate.Content(content); err != nil {
		return model.FutureLetter{}, err
	}
	if err := validate.LetterKey(key); err != nil {
		return model.FutureLetter{}, err
	}
	if key == "" {
		generated, err := GenerateKey(v.keyLength)
		if err != nil {
			return model.FutureLetter{}, errors.NewSystemErrorWithOp("keygen", "generate letter key", err)
		}
		key = generated
	}

	letter := model.FutureLetter{
		Content:       content,
		TargetDate:    target,
		CreatedAt:     v.now().UTC(),
		DecryptionKey: key,
		Status:        model.LetterEncrypted,
	}
	if _, err := storage.Put(ctx, v.store, model.NSFutureLetter, &letter); err != nil {
		return model.FutureLetter{}, err
	}
	logging.DebugContext(ctx, "letter sealed", "target", target, "letter_key", key)
	return letter, nil
}

// Get discloses the letter. Without a key it returns the redacted view of a
// sealed letter. The matching key returns the full letter and persists its
// promotion to open; any other key fails with ErrAccessDenied and changes
// nothing. An opened letter is returned in full regardless of key.
func (v *Vault) Get(ctx context.Context, key string) (model.FutureLetter, error) {
	letter, err := storage.Update(ctx, v.store, model.NSFutureLetter,
		func(cur *model.FutureLetter) (*model.FutureLetter, bool, error) {
			switch {
			case cur == nil:
				return &model.FutureLetter{Status: model.LetterNone}, false, nil
			case cur.Status == model.LetterOpen:
				return cur, false, nil
			case key == "":
				redacted := cur.Redacted()
				return &redacted, false, nil
			case !keysEqual(key, cur.DecryptionKey):
				logging.DebugContext(ctx, "letter key rejected")
				return cur, false, errors.Denied(errors.ErrAccessDenied)
			}
			cur.Status = model.LetterOpen
			logging.DebugContext(ctx, "letter opened")
			return cur, true, nil
		})
	if err != nil {
		return model.FutureLetter{}, err
	}
	return *letter, nil
}

// Status returns the derived state of the vault without disclosing anything.
func (v *Vault) Status(ctx context.Context) (model.LetterStatus, error) {
	cur, found, err := storage.Lookup[*model.FutureLetter](ctx, v.store, model.NSFutureLetter)
	if err != nil {
		return "", err
	}
	if !found || cur == nil {
		return model.LetterNone, nil
	}
	return cur.Status, nil
}

// GenerateKey returns n random symbols from KeySymbols.
func GenerateKey(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	limit := big.NewInt(int64(len(KeySymbols)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(KeySymbols[idx.Int64()])
	}
	return sb.String(), nil
}

func keysEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Package account handles registration, sign-in and the displayed profile.
//
// Accounts are a local gate in front of a single-user store, not a
// security boundary: credentials are kept as entered and compared in
// constant time.
package account

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/manav03panchal/chronos/internal/blob"
	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/storage"
	"github.com/manav03panchal/chronos/internal/validate"
)

// The demo account is always accepted.
const (
	DemoEmail    = "test@chronos.com"
	DemoPassword = "123456"
	DemoMorse    = "........"
)

// Blobs is the part of the blob store the account needs for avatars.
type Blobs interface {
	Put(ctx context.Context, data []byte) (string, error)
	Remove(ctx context.Context, uri string) error
}

// Ticker advances the attribute baseline.
type Ticker interface {
	Tick(ctx context.Context) (model.CoreAttributes, error)
}

// Service owns the users and user_profile namespaces.
type Service struct {
	store  *storage.RecordStore
	blobs  Blobs
	ticker Ticker
}

// New creates an account service. ticker may be nil.
func New(store *storage.RecordStore, blobs Blobs, ticker Ticker) *Service {
	return &Service{store: store, blobs: blobs, ticker: ticker}
}

// Credentials identify a sign-in attempt. When Morse is set it is checked
// instead of Password.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Morse    string `json:"morseCode,omitempty"`
}

// Registration is a new account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Morse    string `json:"morseCode,omitempty"`
}

// Register creates an account and makes its name the displayed profile
// name. The email must not be registered yet.
func (s *Service) Register(ctx context.Context, r Registration) (model.UserProfile, error) {
	r.Name = validate.SanitizeTitle(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if err := validate.NonEmpty("name", r.Name); err != nil {
		return model.UserProfile{}, err
	}
	if err := validate.Email(r.Email); err != nil {
		return model.UserProfile{}, err
	}
	if err := validate.Password(r.Password); err != nil {
		return model.UserProfile{}, err
	}
	if r.Morse != "" {
		if err := validate.Morse(r.Morse); err != nil {
			return model.UserProfile{}, err
		}
	}

	_, err := storage.Update(ctx, s.store, model.NSUsers,
		func(cur []model.User) ([]model.User, bool, error) {
			for _, u := range cur {
				if sameEmail(u.Email, r.Email) {
					return cur, false, errors.Denied(errors.ErrSignalCollision)
				}
			}
			return append(cur, model.User{
				Name:      r.Name,
				Email:     r.Email,
				Password:  r.Password,
				MorseCode: r.Morse,
			}), true, nil
		})
	if err != nil {
		return model.UserProfile{}, err
	}
	logging.InfoContext(ctx, "account registered", logging.KeyEmail, r.Email)

	return s.UpdateProfile(ctx, model.ProfileUpdate{Name: &r.Name})
}

// Login checks c against the registered accounts and the demo account.
// On success the profile name is set to the account's name and the
// attribute baseline is advanced.
func (s *Service) Login(ctx context.Context, c Credentials) (model.UserProfile, error) {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" {
		return model.UserProfile{}, errors.NewUserError("Email cannot be empty", "Provide the email you registered with")
	}

	users, err := storage.Get[[]model.User](ctx, s.store, model.NSUsers)
	if err != nil {
		return model.UserProfile{}, err
	}

	name := ""
	for _, u := range users {
		if sameEmail(u.Email, c.Email) && matches(u, c) {
			name = u.Name
			break
		}
	}
	if name == "" && isDemo(c) {
		name = model.DefaultProfileName
	}
	if name == "" {
		logging.WarnContext(ctx, "sign-in rejected", logging.KeyEmail, c.Email)
		return model.UserProfile{}, errors.Denied(errors.ErrIdentityMismatch)
	}

	profile, err := s.UpdateProfile(ctx, model.ProfileUpdate{Name: &name})
	if err != nil {
		return model.UserProfile{}, err
	}
	if s.ticker != nil {
		if _, err := s.ticker.Tick(ctx); err != nil {
			return profile, err
		}
	}
	logging.InfoContext(ctx, "signed in", logging.KeyEmail, c.Email)
	return profile, nil
}

func matches(u model.User, c Credentials) bool {
	if c.Morse != "" {
		return u.MorseCode != "" && secretEqual(u.MorseCode, c.Morse)
	}
	return secretEqual(u.Password, c.Password)
}

func isDemo(c Credentials) bool {
	if !sameEmail(c.Email, DemoEmail) {
		return false
	}
	return secretEqual(c.Password, DemoPassword) || secretEqual(c.Morse, DemoMorse)
}

// sameEmail is the one rule for comparing addresses: case does not matter.
func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}

func secretEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Profile returns the displayed profile.
func (s *Service) Profile(ctx context.Context) (model.UserProfile, error) {
	return storage.Get[model.UserProfile](ctx, s.store, model.NSUserProfile)
}

// UpdateProfile merges u into the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, u model.ProfileUpdate) (model.UserProfile, error) {
	if u.Name != nil {
		name := validate.SanitizeTitle(*u.Name)
		if err := validate.Title("name", name); err != nil {
			return model.UserProfile{}, err
		}
		u.Name = &name
	}
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		if err := validate.ImageRef(*u.AvatarURL); err != nil {
			return model.UserProfile{}, err
		}
	}
	var previous string
	profile, err := storage.Update(ctx, s.store, model.NSUserProfile,
		func(cur model.UserProfile) (model.UserProfile, bool, error) {
			previous = cur.AvatarURL
			return u.Apply(cur), true, nil
		})
	if err != nil {
		return model.UserProfile{}, err
	}
	s.release(ctx, previous, profile.AvatarURL)
	return profile, nil
}

// release removes a replaced avatar payload from the blob store.
func (s *Service) release(ctx context.Context, previous, current string) {
	if !blob.IsURI(previous) || previous == current {
		return
	}
	if err := s.blobs.Remove(ctx, previous); err != nil {
		logging.WarnContext(ctx, "previous avatar not removed", logging.KeyBlobID, previous, logging.KeyError, err)
	}
}

// SetAvatar stores image as the new avatar. A previous avatar held in the
// blob store is removed once the profile points at the new one.
func (s *Service) SetAvatar(ctx context.Context, image []byte) (model.UserProfile, error) {
	if len(image) == 0 {
		return model.UserProfile{}, errors.NewUserError("Avatar image is empty", "Choose an image file")
	}
	uri, err := s.blobs.Put(ctx, image)
	if err != nil {
		return model.UserProfile{}, err
	}

	var previous string
	profile, err := storage.Update(ctx, s.store, model.NSUserProfile,
		func(cur model.UserProfile) (model.UserProfile, bool, error) {
			previous = cur.AvatarURL
			cur.AvatarURL = uri
			return cur, true, nil
		})
	if err != nil {
		// The profile never referenced the new payload.
		_ = s.blobs.Remove(ctx, uri)
		return model.UserProfile{}, err
	}

	s.release(ctx, previous, uri)
	return profile, nil
}

package model

// DefaultProfileName is the profile name of a fresh store.
const DefaultProfileName = "Chronos Pioneer"

// UserProfile is the displayed identity.
type UserProfile struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ProfileUpdate is a partial profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Apply merges u into p.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
	return p
}

// User is a registered account in the users namespace.
type User struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	MorseCode string `json:"morseCode,omitempty"`
}

// MorseCodeLength is the fixed length of the alternate secret pattern.
const MorseCodeLength = 8

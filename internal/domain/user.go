package domain

import "fmt"

// User holds a user's derived preference vector.
// An empty preference means "no profile yet" — a normal state for new users.
type User struct {
	id         string
	name       string
	preference []float32
}

// NewUser validates and creates a User.
func NewUser(id, name string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("user ID is required")
	}
	return User{id: id, name: name}, nil
}

// ReconstructUser creates a User without validation (storage hydration).
func ReconstructUser(id, name string, preference []float32) User {
	return User{id: id, name: name, preference: preference}
}

// ID returns the user identifier.
func (u *User) ID() string { return u.id }

// Name returns the user display name.
func (u *User) Name() string { return u.name }

// Preference returns the preference embedding, nil when no profile exists.
func (u *User) Preference() []float32 { return u.preference }

// HasProfile reports whether the user has a non-empty preference vector.
func (u *User) HasProfile() bool { return len(u.preference) > 0 }

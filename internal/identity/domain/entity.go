package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// User is the authoritative user record. PasswordHash never leaves the
// identity service boundary.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmailRegex is the pattern for validating emails
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user entity
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if len(u.Name) < 2 || len(u.Name) > 100 {
		return ErrNameLength
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !EmailRegex.MatchString(u.Email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword validates a raw password before hashing
func ValidatePassword(raw string) error {
	if raw == "" {
		return ErrPasswordRequired
	}
	if len(raw) < 6 {
		return ErrPasswordLength
	}
	return nil
}

// NewUser creates a new unverified user with a generated identifier
func NewUser(email, name, passwordHash string) (*User, error) {
	now := time.Now()
	user := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify marks the user's email as verified
func (u *User) Verify() {
	u.Verified = true
	u.UpdatedAt = time.Now()
}

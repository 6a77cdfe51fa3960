package domain

import "time"

// Profile is the derived projection of an identity-owned user. The UserID is
// a foreign reference: the identity service owns the record this row mirrors,
// and the two stores are never transactionally coupled. A row here may be
// stale or missing relative to the identity store at any instant.
type Profile struct {
	UserID    string
	Email     string
	Name      string
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates a projection row from a registration event payload
func NewProfile(userID, email, name string, createdAt time.Time) *Profile {
	return &Profile{
		UserID:    userID,
		Email:     email,
		Name:      name,
		Verified:  false,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// Validate validates the projection row
func (p *Profile) Validate() error {
	if p.UserID == "" {
		return ErrUserIDRequired
	}
	if p.Name != "" && (len(p.Name) < 2 || len(p.Name) > 100) {
		return ErrNameLength
	}
	return nil
}

// Apply merges non-empty update fields into the profile
func (p *Profile) Apply(name, email string) {
	if name != "" {
		p.Name = name
	}
	if email != "" {
		p.Email = email
	}
	p.UpdatedAt = time.Now()
}

// MarkVerified flips the verified flag
func (p *Profile) MarkVerified(at time.Time) {
	p.Verified = true
	p.UpdatedAt = at
}

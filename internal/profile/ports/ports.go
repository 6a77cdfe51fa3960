package ports

import (
	"context"

	"go-usersync/internal/profile/domain"
	"go-usersync/pkg/events"
)

// ProfileRepository defines the interface for projection persistence
type ProfileRepository interface {
	// GetByID retrieves a profile by user ID
	GetByID(ctx context.Context, userID string) (*domain.Profile, error)

	// GetAll retrieves all profiles
	GetAll(ctx context.Context) ([]*domain.Profile, error)

	// Save inserts or replaces a profile by user ID
	Save(ctx context.Context, profile *domain.Profile) error

	// Update updates an existing profile, failing if the user ID is absent
	Update(ctx context.Context, profile *domain.Profile) error
}

// UserRegisteredHandler handles a decoded user registered event
type UserRegisteredHandler func(ctx context.Context, event events.UserRegisteredEvent) error

// UserVerifiedHandler handles a decoded user verified event
type UserVerifiedHandler func(ctx context.Context, event events.UserVerifiedEvent) error

// EventSubscriber delivers identity events to registered handlers. One
// handler per event type; a handler error is logged by the adapter and the
// message is dropped, never redelivered.
type EventSubscriber interface {
	// SubscribeUserRegistered registers the handler for user registered events
	SubscribeUserRegistered(handler UserRegisteredHandler)

	// SubscribeUserVerified registers the handler for user verified events
	SubscribeUserVerified(handler UserVerifiedHandler)

	// Start begins delivering events until ctx is cancelled
	Start(ctx context.Context) error
}

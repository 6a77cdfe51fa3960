package ports

import (
	"context"

	"go-usersync/internal/identity/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Save inserts or replaces a user by ID
	Save(ctx context.Context, user *domain.User) error

	// Update updates an existing user, failing if the ID is absent
	Update(ctx context.Context, user *domain.User) error
}

// EventPublisher defines the interface for publishing identity events.
// Implementations are best effort: callers treat a publish failure as a
// side-channel problem, not a failure of the operation that triggered it.
type EventPublisher interface {
	// PublishUserRegistered publishes a user registered event
	PublishUserRegistered(ctx context.Context, user *domain.User) error

	// PublishUserVerified publishes a user verified event
	PublishUserVerified(ctx context.Context, user *domain.User) error
}

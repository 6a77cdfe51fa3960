package adapters

import (
	"context"
	"sync"

	"go-usersync/internal/identity/domain"
	apperrors "go-usersync/pkg/errors"
)

// MemoryUserRepository implements UserRepository with an in-process map.
// Nothing survives a restart. The mutex is the external synchronization the
// map needs once gin serves requests from multiple goroutines.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// GetByID retrieves a user by ID
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.NewUserNotFound(id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFound("user", email)
	}
	user := r.byID[id]
	return &user, nil
}

// Save inserts or replaces a user by ID
func (r *MemoryUserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byID[user.ID]; ok && prev.Email != user.Email {
		delete(r.byEmail, prev.Email)
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// Update updates an existing user, failing if the ID is absent
func (r *MemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[user.ID]
	if !ok {
		return domain.NewUserNotFound(user.ID)
	}
	if prev.Email != user.Email {
		delete(r.byEmail, prev.Email)
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

package adapters

import (
	"context"
	"sort"
	"sync"

	"go-usersync/internal/profile/domain"
)

// MemoryProfileRepository implements ProfileRepository with an in-process
// map keyed by user ID. Nothing survives a restart.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

// NewMemoryProfileRepository creates an empty in-memory profile repository
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profiles: make(map[string]domain.Profile),
	}
}

// GetByID retrieves a profile by user ID
func (r *MemoryProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.NewProfileNotFound(userID)
	}
	return &profile, nil
}

// GetAll retrieves all profiles ordered by creation time
func (r *MemoryProfileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profile := p
		profiles = append(profiles, &profile)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})

	return profiles, nil
}

// Save inserts or replaces a profile by user ID
func (r *MemoryProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.UserID] = *profile
	return nil
}

// Update updates an existing profile, failing if the user ID is absent
func (r *MemoryProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; !ok {
		return domain.NewProfileNotFound(profile.UserID)
	}
	r.profiles[profile.UserID] = *profile
	return nil
}

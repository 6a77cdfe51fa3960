package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-usersync/internal/profile/domain"
	apperrors "go-usersync/pkg/errors"
)

// ProfileModel is the GORM model for profiles (persistence layer)
type ProfileModel struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"size:255;not null"`
	Name      string    `gorm:"size:100;not null"`
	Verified  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// PostgresProfileRepository implements ProfileRepository using PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// Migrate runs auto-migration for the profile model
func (r *PostgresProfileRepository) Migrate() error {
	return r.db.AutoMigrate(&ProfileModel{})
}

// GetByID retrieves a profile by user ID
func (r *PostgresProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	var model ProfileModel

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewProfileNotFound(userID)
		}
		return nil, apperrors.NewInternal("failed to get profile", result.Error)
	}

	return toDomain(&model), nil
}

// GetAll retrieves all profiles ordered by creation time
func (r *PostgresProfileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	var models []ProfileModel

	result := r.db.WithContext(ctx).Order("created_at").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list profiles", result.Error)
	}

	profiles := make([]*domain.Profile, len(models))
	for i, model := range models {
		profiles[i] = toDomain(&model)
	}

	return profiles, nil
}

// Save inserts or replaces a profile by user ID
func (r *PostgresProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	model := toModel(profile)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to save profile", result.Error)
	}

	profile.CreatedAt = model.CreatedAt
	profile.UpdatedAt = model.UpdatedAt
	return nil
}

// Update updates an existing profile, failing if the user ID is absent
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	model := toModel(profile)

	result := r.db.WithContext(ctx).Model(&ProfileModel{}).Where("user_id = ?", profile.UserID).Updates(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewProfileNotFound(profile.UserID)
	}

	return nil
}

// toModel converts a domain entity to a GORM model
func toModel(profile *domain.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:    profile.UserID,
		Email:     profile.Email,
		Name:      profile.Name,
		Verified:  profile.Verified,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *ProfileModel) *domain.Profile {
	return &domain.Profile{
		UserID:    model.UserID,
		Email:     model.Email,
		Name:      model.Name,
		Verified:  model.Verified,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

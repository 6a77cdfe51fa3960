package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-usersync/internal/identity/domain"
	apperrors "go-usersync/pkg/errors"
)

// UserModel is the GORM model for users (persistence layer)
type UserModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	Name         string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Verified     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Migrate runs auto-migration for the user model
func (r *PostgresUserRepository) Migrate() error {
	return r.db.AutoMigrate(&UserModel{})
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewUserNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get user", result.Error)
	}

	return toDomain(&model), nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user", email)
		}
		return nil, apperrors.NewInternal("failed to get user by email", result.Error)
	}

	return toDomain(&model), nil
}

// Save inserts or replaces a user by ID
func (r *PostgresUserRepository) Save(ctx context.Context, user *domain.User) error {
	model := toModel(user)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to save user", result.Error)
	}

	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// Update updates an existing user, failing if the ID is absent
func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	model := toModel(user)

	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", user.ID).Updates(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewUserNotFound(user.ID)
	}

	return nil
}

// toModel converts a domain entity to a GORM model
func toModel(user *domain.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Verified:     user.Verified,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Email:        model.Email,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Verified:     model.Verified,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

package domain

import "go-usersync/pkg/errors"

// Domain-specific errors
var (
	ErrNameRequired     = errors.NewValidation("name is required", nil)
	ErrNameLength       = errors.NewValidation("name must be between 2 and 100 characters", nil)
	ErrEmailRequired    = errors.NewValidation("email is required", nil)
	ErrEmailInvalid     = errors.NewValidation("email format is invalid", nil)
	ErrPasswordRequired = errors.NewValidation("password is required", nil)
	ErrPasswordLength   = errors.NewValidation("password must be at least 6 characters", nil)
	ErrEmailExists      = errors.NewConflict("email already exists")
	ErrInvalidLogin     = errors.NewUnauthorized("invalid email or password")
	ErrNotVerified      = errors.NewUnauthorized("email is not verified")
)

// NewUserNotFound creates a not found error with the user ID
func NewUserNotFound(id string) error {
	return errors.NewNotFound("user", id)
}

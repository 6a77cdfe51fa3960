package domain

import "go-usersync/pkg/errors"

// Domain-specific errors
var (
	ErrUserIDRequired = errors.NewValidation("user id is required", nil)
	ErrNameLength     = errors.NewValidation("name must be between 2 and 100 characters", nil)
)

// NewProfileNotFound creates a not found error with the user ID
func NewProfileNotFound(id string) error {
	return errors.NewNotFound("profile", id)
}

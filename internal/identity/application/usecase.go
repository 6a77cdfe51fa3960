package application

import (
	"context"

	"go-usersync/internal/identity/domain"
	"go-usersync/internal/identity/ports"
	"go-usersync/pkg/errors"
	"go-usersync/pkg/hash"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/token"

	"go.uber.org/zap"
)

// IdentityUseCase handles registration, login and email verification
type IdentityUseCase struct {
	repo      ports.UserRepository
	publisher ports.EventPublisher
	tokens    token.Issuer
	log       *logger.Logger
}

// NewIdentityUseCase creates a new identity use case
func NewIdentityUseCase(repo ports.UserRepository, publisher ports.EventPublisher, tokens token.Issuer, log *logger.Logger) *IdentityUseCase {
	return &IdentityUseCase{
		repo:      repo,
		publisher: publisher,
		tokens:    tokens,
		log:       log,
	}
}

// RegisterInput represents the input for registering a user
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// RegisterOutput represents the output of registering a user
type RegisterOutput struct {
	User        *domain.User
	AccessToken string
}

// Register creates a new unverified user and announces it on the bus.
// The repository write is the unit of success: a publish failure is logged
// and swallowed, never surfaced to the caller.
func (uc *IdentityUseCase) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := hash.Password(input.Password)
	if err != nil {
		return nil, errors.NewInternal("failed to hash password", err)
	}

	user, err := domain.NewUser(input.Email, input.Name, passwordHash)
	if err != nil {
		return nil, err
	}

	// Check if email already exists
	existing, err := uc.repo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, errors.NewInternal("failed to check email existence", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to save user", err)
	}

	// Publish event (best effort, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishUserRegistered(ctx, user); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish user registered event",
				zap.Error(err),
				zap.String("user_id", user.ID),
			)
		}
	}

	accessToken, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.NewInternal("failed to issue token", err)
	}

	uc.log.WithContext(ctx).Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return &RegisterOutput{User: user, AccessToken: accessToken}, nil
}

// LoginInput represents the input for logging in
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the output of logging in
type LoginOutput struct {
	User        *domain.User
	AccessToken string
}

// Login authenticates a user. Unknown email, wrong password and an
// unverified email all map to Unauthorized; the caller cannot tell which.
func (uc *IdentityUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := uc.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, domain.ErrInvalidLogin
		}
		return nil, errors.NewInternal("failed to look up user", err)
	}

	if !hash.Compare(user.PasswordHash, input.Password) {
		return nil, domain.ErrInvalidLogin
	}

	if !user.Verified {
		return nil, domain.ErrNotVerified
	}

	accessToken, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.NewInternal("failed to issue token", err)
	}

	uc.log.WithContext(ctx).Info("user logged in",
		zap.String("user_id", user.ID),
	)

	return &LoginOutput{User: user, AccessToken: accessToken}, nil
}

// VerifyEmailInput represents the input for verifying an email
type VerifyEmailInput struct {
	UserID string
}

// VerifyEmailOutput represents the output of verifying an email
type VerifyEmailOutput struct {
	User *domain.User
}

// VerifyEmail flips the verified flag for a user. An unknown user maps to
// Unauthorized rather than NotFound so verification links don't probe the
// user base.
func (uc *IdentityUseCase) VerifyEmail(ctx context.Context, input VerifyEmailInput) (*VerifyEmailOutput, error) {
	user, err := uc.repo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NewUnauthorized("unknown user")
		}
		return nil, errors.NewInternal("failed to look up user", err)
	}

	user.Verify()

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to update user", err)
	}

	// Publish event (best effort, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishUserVerified(ctx, user); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish user verified event",
				zap.Error(err),
				zap.String("user_id", user.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("user verified",
		zap.String("user_id", user.ID),
	)

	return &VerifyEmailOutput{User: user}, nil
}

// GetUserInput represents the input for getting a user
type GetUserInput struct {
	ID string
}

// GetUserOutput represents the output of getting a user
type GetUserOutput struct {
	User *domain.User
}

// GetUser retrieves a user by ID from the authoritative store
func (uc *IdentityUseCase) GetUser(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	user, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetUserOutput{User: user}, nil
}

package application

import (
	"context"

	"go-usersync/internal/profile/domain"
	"go-usersync/internal/profile/ports"
	"go-usersync/pkg/errors"
	"go-usersync/pkg/events"
	"go-usersync/pkg/logger"

	"go.uber.org/zap"
)

// ProfileUseCase maintains and serves the user projection
type ProfileUseCase struct {
	repo ports.ProfileRepository
	log  *logger.Logger
}

// NewProfileUseCase creates a new profile use case
func NewProfileUseCase(repo ports.ProfileRepository, log *logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		repo: repo,
		log:  log,
	}
}

// GetProfileInput represents the input for getting a profile
type GetProfileInput struct {
	UserID string
}

// GetProfileOutput represents the output of getting a profile
type GetProfileOutput struct {
	Profile *domain.Profile
}

// GetProfile retrieves a projection row by user ID. A NotFound here says
// nothing about the identity store: the registration event may simply not
// have arrived yet, or may have been lost for good.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	profile, err := uc.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{Profile: profile}, nil
}

// ListProfilesOutput represents the output of listing profiles
type ListProfilesOutput struct {
	Profiles []*domain.Profile
}

// ListProfiles retrieves all projection rows
func (uc *ProfileUseCase) ListProfiles(ctx context.Context) (*ListProfilesOutput, error) {
	profiles, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ListProfilesOutput{Profiles: profiles}, nil
}

// UpdateProfileInput represents the input for updating a profile
type UpdateProfileInput struct {
	UserID string
	Name   string
	Email  string
}

// UpdateProfileOutput represents the output of updating a profile
type UpdateProfileOutput struct {
	Profile *domain.Profile
}

// UpdateProfile applies partial fields to an existing projection row. It
// fails with NotFound when no local row exists, regardless of whether the
// identity store knows the ID.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	profile, err := uc.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	profile.Apply(input.Name, input.Email)
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("profile updated",
		zap.String("user_id", profile.UserID),
	)

	return &UpdateProfileOutput{Profile: profile}, nil
}

// HandleUserRegistered creates a projection row from a registration event.
// This is the only path that creates rows; there is no pull or backfill.
func (uc *ProfileUseCase) HandleUserRegistered(ctx context.Context, event events.UserRegisteredEvent) error {
	profile := domain.NewProfile(
		event.Payload.ID,
		event.Payload.Email,
		event.Payload.Name,
		event.Payload.CreatedAt,
	)
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := uc.repo.Save(ctx, profile); err != nil {
		return errors.Wrap(err, "failed to save projection")
	}

	uc.log.WithContext(ctx).Info("projection created",
		zap.String("user_id", profile.UserID),
		zap.String("email", profile.Email),
	)

	return nil
}

// HandleUserVerified flips the verified flag on the local row. If the row is
// missing the registration event was lost; the miss is reported so the
// adapter logs it, and the divergence stays until some external
// reconciliation.
func (uc *ProfileUseCase) HandleUserVerified(ctx context.Context, event events.UserVerifiedEvent) error {
	profile, err := uc.repo.GetByID(ctx, event.Payload.ID)
	if err != nil {
		return errors.Wrap(err, "verified event for unknown projection")
	}

	profile.MarkVerified(event.Payload.VerifiedAt)

	if err := uc.repo.Update(ctx, profile); err != nil {
		return errors.Wrap(err, "failed to update projection")
	}

	uc.log.WithContext(ctx).Info("projection verified",
		zap.String("user_id", profile.UserID),
	)

	return nil
}

// RegisterHandlers wires the projection handlers into a subscriber port
func (uc *ProfileUseCase) RegisterHandlers(sub ports.EventSubscriber) {
	sub.SubscribeUserRegistered(uc.HandleUserRegistered)
	sub.SubscribeUserVerified(uc.HandleUserVerified)
}

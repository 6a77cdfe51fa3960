package application

import (
	"context"
	"fmt"
	"testing"

	"go-usersync/internal/identity/adapters"
	"go-usersync/internal/identity/domain"
	"go-usersync/pkg/errors"
	"go-usersync/pkg/logger"
)

// MockEventPublisher records published events and can be made to fail
type MockEventPublisher struct {
	registered []string
	verified   []string
	failWith   error
}

func (m *MockEventPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.registered = append(m.registered, user.ID)
	return nil
}

func (m *MockEventPublisher) PublishUserVerified(ctx context.Context, user *domain.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.verified = append(m.verified, user.ID)
	return nil
}

// StaticTokenIssuer issues a fixed token
type StaticTokenIssuer struct {
	token string
}

func (s *StaticTokenIssuer) Issue(userID string) (string, error) {
	return s.token, nil
}

func newTestUseCase(publisher *MockEventPublisher) *IdentityUseCase {
	repo := adapters.NewMemoryUserRepository()
	tokens := &StaticTokenIssuer{token: "test-token"}
	log := logger.New("test", "debug")
	return NewIdentityUseCase(repo, publisher, tokens, log)
}

func TestRegister_Success(t *testing.T) {
	publisher := &MockEventPublisher{}
	useCase := newTestUseCase(publisher)

	output, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.User.ID == "" {
		t.Error("expected a generated user ID")
	}

	if output.User.Verified {
		t.Error("expected new user to be unverified")
	}

	if output.User.PasswordHash == "secret1" {
		t.Error("expected password to be hashed, got the raw value")
	}

	if output.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}

	if len(publisher.registered) != 1 {
		t.Errorf("expected 1 registered event, got %d", len(publisher.registered))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	publisher := &MockEventPublisher{}
	useCase := newTestUseCase(publisher)

	_, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err = useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "Jane Doe",
		Password: "secret2",
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, errors.CodeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}

	if len(publisher.registered) != 1 {
		t.Errorf("expected no event for rejected registration, got %d events", len(publisher.registered))
	}
}

func TestRegister_PublishFailureIsSwallowed(t *testing.T) {
	publisher := &MockEventPublisher{failWith: fmt.Errorf("bus unreachable")}
	useCase := newTestUseCase(publisher)

	output, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})

	if err != nil {
		t.Fatalf("expected registration to succeed despite publish failure, got %v", err)
	}

	if output.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"invalid email", RegisterInput{Email: "not-an-email", Name: "John Doe", Password: "secret1"}},
		{"missing name", RegisterInput{Email: "john@example.com", Name: "", Password: "secret1"}},
		{"short password", RegisterInput{Email: "john@example.com", Name: "John Doe", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := newTestUseCase(&MockEventPublisher{})

			_, err := useCase.Register(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, errors.CodeValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLogin_UnverifiedUser(t *testing.T) {
	useCase := newTestUseCase(&MockEventPublisher{})

	_, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Correct password, but the email was never verified
	_, err = useCase.Login(context.Background(), LoginInput{
		Email:    "john@example.com",
		Password: "secret1",
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, errors.CodeUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestLogin_AfterVerification(t *testing.T) {
	useCase := newTestUseCase(&MockEventPublisher{})

	reg, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := useCase.VerifyEmail(context.Background(), VerifyEmailInput{UserID: reg.User.ID}); err != nil {
		t.Fatalf("verification failed: %v", err)
	}

	output, err := useCase.Login(context.Background(), LoginInput{
		Email:    "john@example.com",
		Password: "secret1",
	})

	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}

	if !output.User.Verified {
		t.Error("expected verified user")
	}

	if output.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	useCase := newTestUseCase(&MockEventPublisher{})

	reg, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, _ = useCase.VerifyEmail(context.Background(), VerifyEmailInput{UserID: reg.User.ID})

	_, err = useCase.Login(context.Background(), LoginInput{
		Email:    "john@example.com",
		Password: "wrong",
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, errors.CodeUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	useCase := newTestUseCase(&MockEventPublisher{})

	_, err := useCase.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "secret1",
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, errors.CodeUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestVerifyEmail_Success(t *testing.T) {
	publisher := &MockEventPublisher{}
	useCase := newTestUseCase(publisher)

	reg, err := useCase.Register(context.Background(), RegisterInput{
		Email:    "john@example.com",
		Name:     "John Doe",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	output, err := useCase.VerifyEmail(context.Background(), VerifyEmailInput{UserID: reg.User.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !output.User.Verified {
		t.Error("expected verified flag to be set")
	}

	if len(publisher.verified) != 1 {
		t.Errorf("expected 1 verified event, got %d", len(publisher.verified))
	}
}

func TestVerifyEmail_UnknownUser(t *testing.T) {
	useCase := newTestUseCase(&MockEventPublisher{})

	_, err := useCase.VerifyEmail(context.Background(), VerifyEmailInput{UserID: "missing"})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, errors.CodeUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

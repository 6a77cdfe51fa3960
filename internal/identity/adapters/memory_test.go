package adapters

import (
	"context"
	"testing"

	"go-usersync/internal/identity/domain"
	"go-usersync/pkg/errors"
)

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "John Doe", "hashed")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestMemoryRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser(t, "john@example.com")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if byID.Email != "john@example.com" {
		t.Errorf("expected email 'john@example.com', got '%s'", byID.Email)
	}

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected id '%s', got '%s'", user.ID, byEmail.ID)
	}
}

func TestMemoryRepository_GetMissing(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestMemoryRepository_UpdateMissing(t *testing.T) {
	repo := NewMemoryUserRepository()

	user := newUser(t, "john@example.com")
	err := repo.Update(context.Background(), user)

	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestMemoryRepository_UpdateReindexesEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser(t, "john@example.com")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	user.Email = "johnny@example.com"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "john@example.com"); !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected old email to be unindexed, got %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "johnny@example.com")
	if err != nil {
		t.Fatalf("get by new email failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected id '%s', got '%s'", user.ID, byEmail.ID)
	}
}

func TestMemoryRepository_SaveIsolatesCaller(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser(t, "john@example.com")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Mutating the caller's copy must not leak into the store
	user.Name = "changed"

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if stored.Name != "John Doe" {
		t.Errorf("expected stored name 'John Doe', got '%s'", stored.Name)
	}
}

package token

import (
	"testing"
	"time"
)

func TestOpaqueIssuer(t *testing.T) {
	issuer := NewOpaqueIssuer()

	first, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if first == "" {
		t.Fatal("expected a non-empty token")
	}

	second, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if first == second {
		t.Error("expected distinct tokens per issuance")
	}
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Minute)

	tokenStr, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := issuer.Parse(tokenStr)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected user id 'user-1', got '%s'", claims.UserID)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Minute)

	tokenStr, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := NewJWTIssuer("other-secret", time.Minute)
	if _, err := other.Parse(tokenStr); err == nil {
		t.Error("expected parse to fail with a different secret")
	}
}

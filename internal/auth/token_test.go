package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", 5*time.Hour)

	token, err := verifier.Issue("Alice@Example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	email, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected normalized email 'alice@example.com', got %q", email)
	}
}

func TestIssueEmptyEmail(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", time.Hour)

	if _, err := verifier.Issue("   "); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenVerifier("secret-a", time.Hour)
	verifier := NewTokenVerifier("secret-b", time.Hour)

	token, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err != ErrInvalidCredential {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", -time.Minute)

	token, err := verifier.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err != ErrInvalidCredential {
		t.Errorf("expected ErrInvalidCredential for expired token, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", time.Hour)

	if _, err := verifier.Verify("not-a-token"); err != ErrInvalidCredential {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

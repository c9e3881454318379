package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	ti, err := NewTokenIssuer("test-signing-key", "devman-test", "devman-api", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return ti
}

func TestIssueAndValidateRecoversClaims(t *testing.T) {
	ti := newTestIssuer(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := ti.Issue("emp-1", "alice", RoleAdmin, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := ti.Validate(token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "emp-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	ti := newTestIssuer(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := ti.Issue("emp-1", "alice", RoleUser, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := ti.Validate(token, now.Add(30*time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken at expiry, got %v", err)
	}
	if _, err := ti.Validate(token, now.Add(time.Hour)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	ti := newTestIssuer(t)
	now := time.Now().UTC()

	token, err := ti.Issue("emp-1", "alice", RoleUser, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	if _, err := ti.Validate(tampered, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestValidateRejectsForeignIssuerAndAudience(t *testing.T) {
	ti := newTestIssuer(t)
	now := time.Now().UTC()

	cases := map[string]*TokenIssuer{}
	other, err := NewTokenIssuer("test-signing-key", "someone-else", "devman-api", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	cases["issuer mismatch"] = other
	other, err = NewTokenIssuer("test-signing-key", "devman-test", "other-api", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	cases["audience mismatch"] = other
	other, err = NewTokenIssuer("different-key", "devman-test", "devman-api", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	cases["key mismatch"] = other

	for name, issuer := range cases {
		token, err := issuer.Issue("emp-1", "alice", RoleUser, now)
		if err != nil {
			t.Fatalf("%s: Issue: %v", name, err)
		}
		if _, err := ti.Validate(token, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	ti := newTestIssuer(t)
	for _, token := range []string{"", "   ", "not.a.jwt", strings.Repeat("x", 512)} {
		if _, err := ti.Validate(token, time.Now()); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestNewTokenIssuerRejectsBadConfig(t *testing.T) {
	if _, err := NewTokenIssuer("", "iss", "aud", time.Minute); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := NewTokenIssuer("key", "iss", "aud", 0); err == nil {
		t.Fatal("expected error for zero lifetime")
	}
}

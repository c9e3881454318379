package auth

import (
	"errors"
	"testing"
)

func TestAdminOnlyPolicy(t *testing.T) {
	if err := AdminOnly.Evaluate(RoleAdmin); err != nil {
		t.Fatalf("admin role should pass: %v", err)
	}
	if err := AdminOnly.Evaluate(RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user role should be forbidden, got %v", err)
	}
	if err := AdminOnly.Evaluate(""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("empty role should be forbidden, got %v", err)
	}
}

func TestAnyAuthenticatedPolicy(t *testing.T) {
	policy := AnyAuthenticated()
	for _, role := range []string{RoleAdmin, RoleUser, "Auditor"} {
		if err := policy.Evaluate(role); err != nil {
			t.Fatalf("role %q should pass any-authenticated: %v", role, err)
		}
	}
	if err := policy.Evaluate(""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("empty role should be forbidden, got %v", err)
	}
}

func TestRequireRoleIsExactMatch(t *testing.T) {
	policy := RequireRole("Auditor")
	if err := policy.Evaluate("Auditor"); err != nil {
		t.Fatalf("exact match should pass: %v", err)
	}
	if err := policy.Evaluate("auditor"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("role comparison must be case-sensitive, got %v", err)
	}
}

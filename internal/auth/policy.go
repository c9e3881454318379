package auth

// Policy is a closed set of authorization rules evaluated against a
// validated token's role claim. Two policies exist: an exact-role match and
// "any authenticated caller".
type Policy struct {
	role string
	any  bool
}

// RequireRole returns a policy satisfied only by the named role.
func RequireRole(name string) Policy {
	return Policy{role: name}
}

// AnyAuthenticated returns a policy satisfied by any valid role claim.
func AnyAuthenticated() Policy {
	return Policy{any: true}
}

// AdminOnly is the policy guarding account administration.
var AdminOnly = RequireRole(RoleAdmin)

// Evaluate decides whether roleName satisfies the policy. Pure function:
// no side effects, no store access.
func (p Policy) Evaluate(roleName string) error {
	if roleName == "" {
		return ErrForbidden
	}
	if p.any {
		return nil
	}
	if roleName != p.role {
		return ErrForbidden
	}
	return nil
}

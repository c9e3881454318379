package auth

import "errors"

var (
	// ErrUnauthorized covers every failed login. Unknown username and wrong
	// password deliberately share this value.
	ErrUnauthorized = errors.New("auth: unauthorized")

	// ErrInvalidToken covers every token rejection: parse failure, bad
	// signature, issuer/audience mismatch, expiry. Callers must not be able
	// to tell these apart.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrForbidden means the token is valid but the role claim does not
	// satisfy the operation's policy.
	ErrForbidden = errors.New("auth: forbidden")

	ErrEmployeeNotFound   = errors.New("auth: employee not found")
	ErrRoleNotFound       = errors.New("auth: role not found")
	ErrUsernameTaken      = errors.New("auth: username is already taken")
	ErrEmployeeHasAccount = errors.New("auth: employee already has an account")
	ErrWeakPassword       = errors.New("auth: password does not meet policy")
	ErrInvalidUsername    = errors.New("auth: invalid username")
	ErrAccountNotFound    = errors.New("auth: account not found")

	// ErrStoreUnavailable is returned by store implementations on
	// infrastructure failure and propagated unchanged.
	ErrStoreUnavailable = errors.New("auth: store unavailable")
)

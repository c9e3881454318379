package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity baked into a session token: the employee the
// account belongs to (subject), the username and the role name.
type Claims struct {
	Username string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates signed session tokens. Configuration is
// fixed for the process lifetime.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewTokenIssuer constructs a TokenIssuer signing with HS512.
func NewTokenIssuer(key, issuer, audience string, lifetime time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("auth: signing key is required")
	}
	if lifetime <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}
	return &TokenIssuer{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
	}, nil
}

// Issue signs a token for the given identity, valid from now until
// now+lifetime. Deterministic for identical inputs and timestamp.
func (ti *TokenIssuer) Issue(employeeID, username, roleName string, now time.Time) (string, error) {
	now = now.UTC()
	claims := Claims{
		Username: username,
		Role:     roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(ti.key)
}

// Validate parses the token, checks the signature, issuer, audience and the
// validity window against now. Every rejection is ErrInvalidToken; callers
// learn nothing about why a token was refused.
func (ti *TokenIssuer) Validate(token string, now time.Time) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return ti.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Role) == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Lifetime reports the configured validity window length.
func (ti *TokenIssuer) Lifetime() time.Duration {
	return ti.lifetime
}

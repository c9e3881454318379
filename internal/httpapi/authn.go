package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"devicemanager.org/internal/auth"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

var publicPaths = []string{
	"/api/auth",
	"/metrics",
	"/healthz",
	"/readyz",
	"/",
}

// withAuth validates the bearer token on every non-public request and
// stores the claims in the request context. Absent or invalid tokens are
// rejected here with 401; role checks happen per handler.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			unauthenticated(w, r)
			return
		}
		claims, err := a.tokens.Validate(token, time.Now())
		if err != nil {
			unauthenticated(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

// requirePolicy evaluates the operation's policy against the authenticated
// role claim. Returns false after writing the response when access is
// denied.
func (a *API) requirePolicy(w http.ResponseWriter, r *http.Request, policy auth.Policy) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		unauthenticated(w, r)
		return false
	}
	if err := policy.Evaluate(claims.Role); err != nil {
		w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
		writeError(w, r, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

func unauthenticated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="devicemanager"`)
	writeError(w, r, http.StatusUnauthorized, "authentication required")
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearerPrefix)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

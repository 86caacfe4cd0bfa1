package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue takes any value as key. With a plain string key like
// "identity", any package that knows the string could read or shadow the
// value. A package-private key type means only this package can attach or
// read identities.
type contextKey string

const identityKey contextKey = "identity"

const bearerPrefix = "Bearer"

// RequireAuth enforces authentication on protected routes.
//
// It reads the token from the Authorization header, validates it, and stores
// the caller's Identity in the request context. If the header is missing or
// malformed, or the token fails validation, it responds 401 and the wrapped
// handler never runs.
//
// Per-request state machine: Unchecked → Authenticated(identity) | Rejected.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			identity, err := tokens.Validate(raw)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated caller from the request
// context. Returns (nil, false) if the request did not pass RequireAuth.
//
// Usage in handlers:
//
//	identity, ok := auth.IdentityFromContext(r.Context())
//	if !ok {
//	    // unreachable on a RequireAuth-protected route, but be safe
//	}
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// bearerToken extracts the token material from the Authorization header.
//
// The accepted shape is exactly "Bearer <token>": the literal prefix
// (case-sensitive), one single space, and a non-empty payload. A missing
// header, a different scheme, extra delimiters, or a bare "Bearer" are all
// rejected - there is no lenient parsing on the auth boundary.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("token missing")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}

// unauthorized writes the 401 response for rejected requests. The middleware
// cannot use the handler package's helpers (it would create an import cycle),
// so it emits the same JSON error shape directly.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q,"code":"unauthorized"}`+"\n", message)
}

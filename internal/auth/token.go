// Package auth provides JWT token issuance/verification, password hashing,
// and the authentication middleware for the articles API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. POST /auth/register → bcrypt-hash the password, store the user
// 2. POST /auth/login → verify credentials, issue a signed JWT
// 3. On mutating article routes, middleware reads the Authorization header,
//    validates the JWT, and sets the caller's identity in the request context
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + token type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims → {"sub":"<userID>","username":"...","exp":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
//
// The token is stateless: everything the server needs (identity, expiry) is
// inside the signed payload, so verification needs no storage lookup. The
// trade-off is that a token cannot be revoked before it expires.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window for issued tokens.
const DefaultTokenTTL = time.Hour

const issuer = "articles-api"

// Identity is the claim bundle the middleware hands to downstream handlers.
type Identity struct {
	UserID   string
	Username string
}

// TokenService issues and verifies signed session tokens.
//
// It holds the HMAC secret used for both signing and verification - the same
// secret must be configured on every process that accepts these tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and token
// lifetime. A non-positive ttl falls back to DefaultTokenTTL.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload. It embeds jwt.RegisteredClaims (Subject, Issuer,
// IssuedAt, ExpiresAt) and adds the username so handlers can log or display
// the caller without a user lookup.
//
// "sub" holds the internal user ID - the standard claim for identifying who
// the token belongs to.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given user.
//
// Signing algorithm: HS256 (HMAC-SHA256) - symmetric, same key for signing
// and verifying. Token lifetime is the service's configured TTL (1 hour by
// default, matching the reference behaviour).
func (s *TokenService) Generate(userID, username string) (string, error) {
	return s.GenerateWithDuration(userID, username, s.ttl)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used in tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID, username string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning the identity it
// encodes.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (payload wasn't tampered with)
//   - Token is not expired (ExpiresAt is in the future)
//   - Issuer matches (rejects tokens minted by other apps)
//   - Algorithm is HS256 (prevents algorithm confusion attacks - without
//     jwt.WithValidMethods, an attacker could present an unsigned "none"
//     token and some parsers would accept it)
func (s *TokenService) Validate(tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Translate jwt library errors into cleaner messages
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return nil, fmt.Errorf("auth: token has no subject")
	}

	return &Identity{UserID: c.Subject, Username: c.Username}, nil
}

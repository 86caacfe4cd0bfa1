// Package service: authentication business logic.
//
// AuthService sits between the HTTP handlers and the credential store /
// token utilities:
//
//	AuthHandler (HTTP) → AuthService (business rules) → UserRepository (store)
//	                   ↘ TokenService (JWT), PasswordService (bcrypt)
//
// It owns the two rules the transport layer must never re-implement:
//   - registration stores a salted hash, never the plaintext, and surfaces
//     a conflict for a taken username
//   - login failures are UNIFORM: an unknown username and a wrong password
//     produce the same error, so responses can't be used to enumerate which
//     usernames exist
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/auth"
	"github.com/sakif/articles-api/internal/model"
	"github.com/sakif/articles-api/internal/repository"
)

// invalidCredentialsMessage is shared by every login failure path.
const invalidCredentialsMessage = "invalid credentials"

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Call this in server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account and returns its public view.
//
// Fails with ErrValidation when either field is empty or the password
// exceeds bcrypt's input limit, and with ErrConflict when the username is
// already registered. The returned view carries only
// {id, username} - the hash never leaves the store.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.PublicUser, error) {
	if username == "" || password == "" {
		return nil, apperror.ValidationFailed("credentials", "username and password are required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", auth.MaxPasswordBytes))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password for %q: %w", username, err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Conflict propagates as-is; the handler maps it to 409.
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	public := user.Public()
	return &public, nil
}

// Login verifies credentials and issues a session token.
//
// The unknown-username and wrong-password paths return the SAME error value
// shape and message. Note that the unknown-username path skips the bcrypt
// comparison, so it is cheaper - acceptable here, since the uniformity
// requirement is about the response, not timing.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperror.ValidationFailed("credentials", "username and password are required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized(invalidCredentialsMessage)
		}
		return "", fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized(invalidCredentialsMessage)
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}

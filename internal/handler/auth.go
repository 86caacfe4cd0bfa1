package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/service"
)

// AuthHandler exposes registration and login over HTTP.
//
// Handlers carry no business logic: they decode the body, call the service,
// and translate the outcome. Validation rules (non-empty fields, uniform
// login failures) live in AuthService; duplicating them here would risk the
// two drifting apart.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /auth/register
// BODY: {"username": "alice", "password": "secret1"}
// 201 → {"id": "1", "username": "alice"}
// 400 → missing field; 409 → username already registered
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and returns a session token.
//
// HTTP: POST /auth/login
// BODY: {"username": "alice", "password": "secret1"}
// 200 → {"token": "<jwt>"}
// 400 → missing field; 401 → invalid credentials (uniform message whether
// the username is unknown or the password is wrong)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

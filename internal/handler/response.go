package handler

// RESPONSE HELPERS:
// writeJSON and writeError standardise how handlers emit responses. Every
// failure, whatever its origin, leaves the process through writeError - it
// is the single translator from domain errors to HTTP, so no handler ever
// hand-rolls a status code or swallows a classified failure.
//
// ERROR BODY SHAPE (every failure, every endpoint):
//
//	{"error": "article not found with id 42", "code": "not_found"}
//
// "error" carries the human-readable message; "code" is the stable
// machine-readable kind a frontend can switch on.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/articles-api/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error string `json:"error"` // Human-readable description
	Code  string `json:"code"`  // Machine-readable error kind (e.g. "not_found")
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body: once Encode writes,
// the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent - all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status code and sends it.
//
// The service layer returns apperror sentinels wrapped (possibly several
// layers deep) in context; errors.Is walks the chain, so classification
// works no matter how much wrapping happened on the way up.
//
// Anything unclassified becomes a generic 500 - raw internal error text is
// never exposed to clients.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		code := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			code = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			code = "unauthorized"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			code = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			code = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error: appErr.Message,
			Code:  code,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "an internal error occurred",
		Code:  "internal_error",
	})
}

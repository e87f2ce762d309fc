package http

import (
	"errors"
	"net/http"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/internal/auth/store"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/jwtx"
	"github.com/magpress/magauth/pkg/slogx"
)

// Stable error codes carried in the error envelope.
const (
	codeAuthenticationFailed = "AUTHENTICATION_FAILED"
	codeTokenExpired         = "TOKEN_EXPIRED"
	codeInvalidToken         = "INVALID_TOKEN"
	codeInsufficientRole     = "INSUFFICIENT_ROLE"
	codeValidationError      = "VALIDATION_ERROR"
	codeCannotDeleteSelf     = "CANNOT_DELETE_SELF"
	codeNotFound             = "NOT_FOUND"
	codeInternalError        = "INTERNAL_ERROR"
)

// respondError maps service and token errors to the error envelope. Reuse
// detection and unknown-token cases collapse into the same authentication
// failure as a bad password so the response itself leaks nothing about the
// registry's state.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, codeValidationError, verr.Message,
			map[string]string{"field": verr.Field, "code": verr.Code})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefresh),
		errors.Is(err, service.ErrReuseDetected),
		errors.Is(err, jwtx.ErrTokenType):
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthenticationFailed,
			"Authentication failed", nil)

	case errors.Is(err, jwtx.ErrExpired):
		httpx.WriteError(w, http.StatusUnauthorized, codeTokenExpired,
			"Token has expired", nil)

	case errors.Is(err, jwtx.ErrInvalid):
		httpx.WriteError(w, http.StatusUnauthorized, codeInvalidToken,
			"Token is invalid", nil)

	case errors.Is(err, service.ErrInsufficientRole):
		httpx.WriteError(w, http.StatusForbidden, codeInsufficientRole,
			"Insufficient permissions", nil)

	case errors.Is(err, service.ErrCannotDeleteSelf):
		httpx.WriteError(w, http.StatusBadRequest, codeCannotDeleteSelf,
			"You cannot delete your own account", nil)

	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, codeNotFound,
			"Resource not found", nil)

	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err,
			"path", r.URL.Path)
		httpx.WriteError(w, http.StatusInternalServerError, codeInternalError,
			"Internal server error", nil)
	}
}

func respondBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, codeValidationError,
		"Request body must be valid JSON", nil)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/jwtx"
)

type ChangePasswordHandler struct {
	AuthService *service.AuthService
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ServeHTTP replaces the caller's password after re-verifying the current
// one. Success revokes every refresh token of the caller; clients must log
// in again.
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		respondError(w, r, jwtx.ErrInvalid)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, codeValidationError,
			"Current and new password are required", nil)
		return
	}

	if err := h.AuthService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, nil, "Password changed. Please log in again.")
}

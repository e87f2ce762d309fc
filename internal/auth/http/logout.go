package http

import (
	"encoding/json"
	"net/http"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/jwtx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	// All revokes every session of the caller instead of just the
	// presented token.
	All bool `json:"all,omitempty"`
}

// ServeHTTP revokes the presented refresh token (or, with all=true, every
// token of the caller). Logout is idempotent: unknown, expired or already
// revoked tokens still get a success response.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}

	if req.All {
		userID, ok := httpx.UserIDFromContext(ctx)
		if !ok {
			respondError(w, r, jwtx.ErrInvalid)
			return
		}
		if err := h.AuthService.LogoutAll(ctx, userID); err != nil {
			respondError(w, r, err)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, nil, "All sessions ended")
		return
	}

	if err := h.AuthService.Logout(ctx, req.RefreshToken); err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, nil, "Logged out")
}

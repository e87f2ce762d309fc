package http

import (
	"encoding/json"
	"net/http"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ServeHTTP rotates the presented refresh token and returns a fresh token
// pair. Replaying an already-rotated token gets the generic authentication
// failure while the service revokes the whole lineage behind it.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, codeValidationError,
			"Refresh token is required", nil)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, newTokenPairResponse(pair), "Token refreshed")
}

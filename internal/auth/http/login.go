package http

import (
	"encoding/json"
	"net/http"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP exchanges a credential pair for an access/refresh token pair.
// Unknown user and wrong password return the identical failure envelope.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, codeValidationError,
			"Username and password are required", nil)
		return
	}

	_, pair, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, newTokenPairResponse(pair), "Login successful")
}

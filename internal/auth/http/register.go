package http

import (
	"encoding/json"
	"net/http"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
)

type RegisterHandler struct {
	UserService *service.UserService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ServeHTTP creates a new user. Admin-only; the role middleware sits in
// front. Role defaults to editor when omitted.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}

	role := domain.RoleEditor
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, codeValidationError,
				"Role must be editor or admin",
				map[string]string{"field": "role", "code": service.CodeUnknownValue})
			return
		}
		role = parsed
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Email, req.Password, role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, newUserResponse(user), "User created")
}

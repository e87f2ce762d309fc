package http

import (
	"net/http"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/jwtx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated caller's own user record. The record
// is loaded fresh rather than echoed from the token so role or email changes
// made since issuance are visible.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		respondError(w, r, jwtx.ErrInvalid)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, newUserResponse(user), "")
}

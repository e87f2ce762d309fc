package http

import (
	"net/http"
	"strconv"

	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/jwtx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleDelete removes a user by id. Admin-only; deleting your own account
// is refused so a deployment cannot lock out its last administrator.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := identityFromContext(ctx)
	if !ok {
		respondError(w, r, jwtx.ErrInvalid)
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidationError,
			"User id must be an integer",
			map[string]string{"field": "id", "code": service.CodeInvalidFormat})
		return
	}

	if err := h.UserService.Delete(ctx, actor, targetID); err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, nil, "User deleted")
}

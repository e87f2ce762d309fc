package http

import (
	"net/http"
	"strings"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/jwtx"
)

// AuthnMiddleware verifies the bearer access token and attaches the caller's
// identity to the request context. Requests without a token fail here; role
// checks are layered separately with RequireRole.
func AuthnMiddleware(guard *service.Guard) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				respondError(w, r, jwtx.ErrInvalid)
				return
			}

			identity, err := guard.Authenticate(raw)
			if err != nil {
				respondError(w, r, err)
				return
			}

			ctx := httpx.WithIdentity(r.Context(),
				identity.UserID, identity.Username, identity.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces a minimum role on an already-authenticated request.
// Must sit inside AuthnMiddleware in the chain.
func RequireRole(guard *service.Guard, minimum domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromContext(r.Context())
			if !ok {
				respondError(w, r, jwtx.ErrInvalid)
				return
			}
			if err := guard.RequireRole(identity, minimum); err != nil {
				respondError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

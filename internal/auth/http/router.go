// Package http exposes the authentication service over REST. Every response
// body is a JSON envelope; every credential endpoint sits behind a rate
// limit keyed to resist brute force.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/service"
	"github.com/magpress/magauth/internal/auth/store"
	"github.com/magpress/magauth/pkg/httpx"
	"github.com/magpress/magauth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	guard *service.Guard

	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	guard *service.Guard,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		guard:        guard,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP plus submitted username so one
	// address cannot walk the user directory.
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)

	// POST /refresh - strict rate limit by IP. The token itself is the
	// credential here, so no field keying.
	refreshHandler := &RefreshHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - requires a live access token; moderate limit by user.
	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(logoutHandler,
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /change-password - strict limit by user: each attempt carries a
	// password guess.
	changePasswordHandler := &ChangePasswordHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/change-password",
		httpx.Chain(changePasswordHandler,
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// GET /me - lenient limit by user.
	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /api/v1/auth/me",
		httpx.Chain(meHandler,
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	// POST /register - admin operation, moderate limit by user.
	registerHandler := &RegisterHandler{UserService: r.UserService}
	r.Mux.Handle("POST /api/v1/auth/register",
		httpx.Chain(registerHandler,
			AuthnMiddleware(r.guard),
			RequireRole(r.guard, domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// DELETE /users/{id} - admin operation, moderate limit by user.
	usersHandler := &UsersHandler{UserService: r.UserService}
	r.Mux.Handle("DELETE /api/v1/auth/users/{id}",
		httpx.Chain(http.HandlerFunc(usersHandler.HandleDelete),
			AuthnMiddleware(r.guard),
			RequireRole(r.guard, domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health probes - lenient limits, monitoring may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

package httpx

import "context"

type ctxKey string

const (
	ctxKeyUserID   ctxKey = "user_id"
	ctxKeyUsername ctxKey = "username"
	ctxKeyRole     ctxKey = "role"
)

// WithIdentity attaches the authenticated caller to ctx. Set by the authn
// middleware after the guard has verified the access token.
func WithIdentity(ctx context.Context, userID int64, username, role string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	ctx = context.WithValue(ctx, ctxKeyUsername, username)
	return context.WithValue(ctx, ctxKeyRole, role)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(ctxKeyUsername).(string)
	return name, ok
}

// RoleFromContext returns the authenticated caller's role name, if any.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ctxKeyRole).(string)
	return role, ok
}

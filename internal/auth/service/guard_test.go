package service

import (
	"testing"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/pkg/idx"
	"github.com/magpress/magauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestGuard() *Guard {
	return &Guard{Codec: jwtx.NewCodec([]byte("0123456789abcdef0123456789abcdef"), testIssuer)}
}

func TestAuthenticateMapsClaimsToIdentity(t *testing.T) {
	t.Parallel()

	g := newTestGuard()
	raw, err := g.Codec.Issue(jwtx.NewAccessClaims(7, "bob", "editor", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	identity, err := g.Authenticate(raw)
	require.NoError(t, err)
	require.Equal(t, int64(7), identity.UserID)
	require.Equal(t, "bob", identity.Username)
	require.Equal(t, domain.RoleEditor, identity.Role)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	t.Parallel()

	g := newTestGuard()
	raw, err := g.Codec.Issue(jwtx.NewRefreshClaims(7, idx.New(), testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = g.Authenticate(raw)
	require.ErrorIs(t, err, jwtx.ErrTokenType)
}

func TestAuthenticateRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	g := newTestGuard()
	raw, err := g.Codec.Issue(jwtx.NewAccessClaims(7, "bob", "superuser", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = g.Authenticate(raw)
	require.ErrorIs(t, err, jwtx.ErrInvalid)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	t.Parallel()

	g := newTestGuard()
	_, err := g.Authenticate("not-a-token")
	require.ErrorIs(t, err, jwtx.ErrInvalid)
}

func TestRequireRoleOrdering(t *testing.T) {
	t.Parallel()

	g := newTestGuard()
	editor := domain.Identity{UserID: 1, Role: domain.RoleEditor}
	admin := domain.Identity{UserID: 2, Role: domain.RoleAdmin}

	require.NoError(t, g.RequireRole(editor, domain.RoleEditor))
	require.NoError(t, g.RequireRole(admin, domain.RoleEditor), "admin is a strict superset of editor")
	require.NoError(t, g.RequireRole(admin, domain.RoleAdmin))
	require.ErrorIs(t, g.RequireRole(editor, domain.RoleAdmin), ErrInsufficientRole)
}

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoginRefreshLogoutFlow walks the whole session lifecycle: login,
// identity lookup, rotation, replay of the rotated token, and logout.
func TestLoginRefreshLogoutFlow(t *testing.T) {
	ts := newTestServer(t)

	pair := login(t, ts, editorUsername, editorPassword)

	// The access token resolves to the editor's own record.
	code, env := doJSON(t, http.MethodGet, ts.URL+"/api/v1/auth/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	require.Equal(t, editorUsername, me.Username)
	require.Equal(t, "editor@example.com", me.Email)
	require.Equal(t, "editor", me.Role)

	// Rotation yields a distinct pair.
	code, _, rotated := refresh(t, ts, pair.RefreshToken)
	require.Equal(t, http.StatusOK, code)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Replaying the rotated token is an authentication failure...
	code, env, _ = refresh(t, ts, pair.RefreshToken)
	assertAuthenticationFailed(t, code, env)

	// ...and the reuse response kills the fresh token too.
	code, env, _ = refresh(t, ts, rotated.RefreshToken)
	assertAuthenticationFailed(t, code, env)
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	ts := newTestServer(t)

	pair := login(t, ts, editorUsername, editorPassword)

	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", pair.AccessToken,
		map[string]string{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	code, env, _ = refresh(t, ts, pair.RefreshToken)
	assertAuthenticationFailed(t, code, env)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ts := newTestServer(t)

	pair := login(t, ts, editorUsername, editorPassword)

	for range 2 {
		code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", pair.AccessToken,
			map[string]string{"refresh_token": pair.RefreshToken})
		require.Equal(t, http.StatusOK, code)
		require.True(t, env.Success)
	}

	// Garbage refresh token still succeeds: nothing to revoke.
	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", pair.AccessToken,
		map[string]string{"refresh_token": "not-a-token"})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)
}

func TestLogoutAllEndsEverySession(t *testing.T) {
	ts := newTestServer(t)

	first := login(t, ts, editorUsername, editorPassword)
	second := login(t, ts, editorUsername, editorPassword)

	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", second.AccessToken,
		map[string]any{"refresh_token": second.RefreshToken, "all": true})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	code, env, _ = refresh(t, ts, first.RefreshToken)
	assertAuthenticationFailed(t, code, env)
	code, env, _ = refresh(t, ts, second.RefreshToken)
	assertAuthenticationFailed(t, code, env)
}

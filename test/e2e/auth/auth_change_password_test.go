package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangePasswordInvalidatesSessions(t *testing.T) {
	ts := newTestServer(t)

	first := login(t, ts, editorUsername, editorPassword)
	second := login(t, ts, editorUsername, editorPassword)

	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/change-password", first.AccessToken,
		map[string]string{"current_password": editorPassword, "new_password": "Brand-New-Pw1"})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	// Every session's refresh token is dead.
	code, env, _ = refresh(t, ts, first.RefreshToken)
	assertAuthenticationFailed(t, code, env)
	code, env, _ = refresh(t, ts, second.RefreshToken)
	assertAuthenticationFailed(t, code, env)

	// The old password no longer logs in; the new one does.
	code, env = doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "",
		map[string]string{"username": editorUsername, "password": editorPassword})
	assertAuthenticationFailed(t, code, env)
	login(t, ts, editorUsername, "Brand-New-Pw1")
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	ts := newTestServer(t)
	pair := login(t, ts, editorUsername, editorPassword)

	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/change-password", pair.AccessToken,
		map[string]string{"current_password": "not-the-password", "new_password": "Brand-New-Pw1"})
	assertAuthenticationFailed(t, code, env)

	// Sessions survive the failed attempt.
	code, _, _ = refresh(t, ts, pair.RefreshToken)
	require.Equal(t, http.StatusOK, code)
}

func TestChangePasswordEnforcesMinimumLength(t *testing.T) {
	ts := newTestServer(t)
	pair := login(t, ts, editorUsername, editorPassword)

	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/change-password", pair.AccessToken,
		map[string]string{"current_password": editorPassword, "new_password": "short"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "VALIDATION_ERROR", env.Error)
	require.Equal(t, "new_password", env.Details["field"])
	require.Equal(t, "TOO_SHORT", env.Details["code"])
}

func TestChangePasswordRequiresAuthentication(t *testing.T) {
	ts := newTestServer(t)

	code, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/change-password", "",
		map[string]string{"current_password": editorPassword, "new_password": "Brand-New-Pw1"})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "INVALID_TOKEN", env.Error)
}

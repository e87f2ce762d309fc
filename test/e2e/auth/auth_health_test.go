package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		code, env := doJSON(t, http.MethodGet, ts.URL+path, "", nil)
		require.Equal(t, http.StatusOK, code, path)
		require.True(t, env.Success, path)

		var health struct {
			Status  string `json:"status"`
			Version string `json:"version"`
		}
		require.NoError(t, unmarshalData(env, &health))
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "e2e", health.Version)
	}
}

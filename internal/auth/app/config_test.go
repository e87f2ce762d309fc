package app

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SECRET_KEY", "AUTH_ISSUER", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"MIN_PASSWORD_LENGTH", "ENV", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 8, cfg.MinPasswordLength)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "magauth", cfg.Issuer)
	require.Equal(t, 24*time.Hour, cfg.RefreshRetention)
}

func TestValidateRejectsWeakSecretOutsideDev(t *testing.T) {
	cfg := Config{
		Env:               "prod",
		SecretKey:         "short",
		AccessTokenTTL:    30 * time.Minute,
		RefreshTokenTTL:   168 * time.Hour,
		MinPasswordLength: 8,
	}

	err := cfg.Validate(discardLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "SECRET_KEY")
}

func TestValidateAllowsWeakSecretInDev(t *testing.T) {
	cfg := Config{
		Env:               "dev",
		SecretKey:         "short",
		AccessTokenTTL:    30 * time.Minute,
		RefreshTokenTTL:   168 * time.Hour,
		MinPasswordLength: 8,
	}

	require.NoError(t, cfg.Validate(discardLogger()))
}

func TestValidateRequiresRefreshTTLAboveAccessTTL(t *testing.T) {
	cfg := Config{
		Env:               "prod",
		SecretKey:         strings.Repeat("k", minSecretKeyLength),
		AccessTokenTTL:    time.Hour,
		RefreshTokenTTL:   time.Hour,
		MinPasswordLength: 8,
	}

	err := cfg.Validate(discardLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "REFRESH_TOKEN_TTL")
}

func TestValidateAcceptsProductionConfig(t *testing.T) {
	cfg := Config{
		Env:               "prod",
		SecretKey:         strings.Repeat("k", minSecretKeyLength),
		AccessTokenTTL:    30 * time.Minute,
		RefreshTokenTTL:   168 * time.Hour,
		MinPasswordLength: 8,
	}

	require.NoError(t, cfg.Validate(discardLogger()))
}

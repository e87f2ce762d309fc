package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// minSecretKeyLength is what HS256 needs to resist offline brute force: the
// signing key must carry at least as much entropy as the digest.
const minSecretKeyLength = 32

type Config struct {
	// SecretKey signs access and refresh tokens. Required outside dev.
	SecretKey string `env:"SECRET_KEY"`
	Issuer    string `env:"AUTH_ISSUER" envDefault:"magauth"`

	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTokenTTL   time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	MinPasswordLength int           `env:"MIN_PASSWORD_LENGTH" envDefault:"8"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	// RefreshRetention keeps expired refresh-token records queryable past
	// their expiry so late replays still trip reuse detection.
	RefreshRetention time.Duration `env:"REFRESH_RETENTION" envDefault:"24h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate fails startup on configurations that would silently undermine the
// token scheme, and logs warnings for settings weaker than the defaults.
func (c Config) Validate(logger *slog.Logger) error {
	if c.Env != "dev" && len(c.SecretKey) < minSecretKeyLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters outside dev", minSecretKeyLength)
	}
	if c.Env == "dev" && len(c.SecretKey) < minSecretKeyLength {
		logger.Warn("SECRET_KEY is weak; acceptable in dev only",
			"length", len(c.SecretKey), "minimum", minSecretKeyLength)
	}

	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %s", c.AccessTokenTTL)
	}
	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL (%s) must exceed ACCESS_TOKEN_TTL (%s)",
			c.RefreshTokenTTL, c.AccessTokenTTL)
	}
	if c.MinPasswordLength < 1 {
		return fmt.Errorf("MIN_PASSWORD_LENGTH must be positive, got %d", c.MinPasswordLength)
	}

	if c.AccessTokenTTL > 30*time.Minute {
		logger.Warn("access token TTL exceeds the recommended 30m",
			"ttl", c.AccessTokenTTL)
	}
	if c.MinPasswordLength < 8 {
		logger.Warn("minimum password length below the recommended 8",
			"min_password_length", c.MinPasswordLength)
	}

	return nil
}

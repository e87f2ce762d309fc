// Package jwtx signs and parses the bearer tokens issued by the auth
// service. Access and refresh tokens are both HS256 JWTs distinguished by a
// "type" claim; presenting one where the other is required is rejected at
// parse time.
package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/magpress/magauth/pkg/idx"
)

// Token type discriminator carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Default token lifetimes. Both are configurable; the access TTL must always
// be shorter than the refresh TTL.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the claims embedded in every token the service mints.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the user's role name ("editor" or "admin"). Only set on
	// access tokens; refresh tokens re-resolve the role at rotation time.
	Role string `json:"role,omitempty"`

	// TokenType is "access" or "refresh".
	TokenType string `json:"type"`

	// Username for the authenticated user, informational only.
	Username string `json:"username,omitempty"`
}

// UserID returns the subject as the numeric user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return id, nil
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(userID int64, username, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(userID, issuer, ttl, now, idx.New().String()),
		Role:             role,
		TokenType:        TokenTypeAccess,
		Username:         username,
	}
}

// NewRefreshClaims builds claims for a refresh token. The jti identifies the
// token in the refresh registry; it is the only state the registry keeps.
func NewRefreshClaims(userID int64, jti idx.ID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(userID, issuer, ttl, now, jti.String()),
		TokenType:        TokenTypeRefresh,
	}
}

func registered(userID int64, issuer string, ttl time.Duration, now time.Time, jti string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti,
	}
}

package domain

import (
	"time"

	"github.com/magpress/magauth/pkg/idx"
)

// TokenPair is what login and refresh return: the short-lived access token
// and the rotating refresh token, both compact JWTs.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"` // always "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"` // seconds until access-token expiry
}

// RefreshToken models the stored refresh-token record. Only the token id
// (the JWT's jti) is persisted; the signed token value stays with the
// client. RotatedFrom links rotation lineage for reuse forensics.
type RefreshToken struct {
	ID          idx.ID
	UserID      int64
	RotatedFrom idx.ID // zero for the first token of a lineage
	ExpiresAt   time.Time
	Revoked     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active reports whether the record may still be honoured at time now.
func (t RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

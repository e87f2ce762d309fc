package http

import (
	"context"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/pkg/httpx"
)

// tokenPairResponse is the data object of login and refresh responses.
type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func newTokenPairResponse(pair *domain.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

// userResponse is the public view of a user record. The password hash never
// leaves the service layer.
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// identityFromContext rebuilds the caller's identity planted by
// AuthnMiddleware.
func identityFromContext(ctx context.Context) (domain.Identity, bool) {
	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		return domain.Identity{}, false
	}
	username, _ := httpx.UsernameFromContext(ctx)
	roleName, _ := httpx.RoleFromContext(ctx)
	role, err := domain.ParseRole(roleName)
	if err != nil {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: userID, Username: username, Role: role}, true
}

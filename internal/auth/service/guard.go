package service

import (
	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/pkg/jwtx"
)

// Guard resolves identity and role from a presented access token and
// enforces minimum-role requirements. It is a pure decision function: no
// storage access, no side effects, safe at every protected call site.
type Guard struct {
	Codec *jwtx.Codec
}

// Authenticate parses rawToken, requires token-type=access and maps the
// claims to an identity view. A refresh token presented here fails with
// jwtx.ErrTokenType rather than being accepted.
func (g *Guard) Authenticate(rawToken string) (domain.Identity, error) {
	claims, err := g.Codec.ParseType(rawToken, jwtx.TokenTypeAccess)
	if err != nil {
		return domain.Identity{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return domain.Identity{}, jwtx.ErrInvalid
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, jwtx.ErrInvalid
	}

	return domain.Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     role,
	}, nil
}

// RequireRole fails with ErrInsufficientRole when identity's role does not
// meet minimum under editor < admin.
func (g *Guard) RequireRole(identity domain.Identity, minimum domain.Role) error {
	if !identity.Role.Meets(minimum) {
		return ErrInsufficientRole
	}
	return nil
}

package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid reports a malformed token or a bad signature.
	ErrInvalid = errors.New("jwtx: invalid token")

	// ErrExpired reports a structurally valid, correctly signed token whose
	// lifetime has lapsed.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrTokenType reports a valid token presented where the other token
	// type is required (e.g. a refresh token on an access-only endpoint).
	ErrTokenType = errors.New("jwtx: unexpected token type")
)

// Codec signs and verifies tokens with a single process-wide HMAC secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
}

// NewCodec returns a Codec signing with secret. The secret's strength is
// enforced by the application config at startup, not here.
func NewCodec(secret []byte, issuer string) *Codec {
	return &Codec{secret: secret, issuer: issuer}
}

// Issue serializes and signs claims, returning the compact three-segment
// token string.
func (c *Codec) Issue(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and then the registered time claims. The
// signature is always checked before any claim is trusted; a token that is
// both tampered and expired surfaces ErrInvalid, never ErrExpired.
func (c *Codec) Parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrInvalid
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrExpired
		default:
			return Claims{}, ErrInvalid
		}
	}
	return claims, nil
}

// ParseType is Parse plus an exact token-type requirement.
func (c *Codec) ParseType(raw, wantType string) (Claims, error) {
	claims, err := c.Parse(raw)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != wantType {
		return Claims{}, ErrTokenType
	}
	return claims, nil
}

func (c *Codec) keyFunc(*jwt.Token) (any, error) {
	return c.secret, nil
}

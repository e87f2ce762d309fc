package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/store"
	"github.com/magpress/magauth/pkg/cryptox"
	"github.com/magpress/magauth/pkg/idx"
	"github.com/magpress/magauth/pkg/jwtx"
	"github.com/magpress/magauth/pkg/slogx"
)

// AuthService orchestrates the credential lifecycle: login mints an access/
// refresh pair and records the refresh token; refresh rotates it; logout and
// password changes revoke it.
type AuthService struct {
	Store      store.Store
	Codec      *jwtx.Codec
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// MinPasswordLength applies to new passwords only; existing hashes
	// remain verifiable regardless.
	MinPasswordLength int
}

// dummyHash keeps login latency uniform when the username is unknown: the
// argon2 work happens whether or not a user record exists.
var dummyHash = func() string {
	h, err := cryptox.HashPassword("magauth-dummy-credential")
	if err != nil {
		panic(err)
	}
	return h
}()

// Login verifies the credential pair and issues a token pair. Unknown user
// and wrong password produce the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, *domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same hashing cost as a real verification.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("login failed", slog.String("username", username))
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, fmt.Errorf("verify password: %w", err)
	}

	pair, err := s.issuePair(ctx, s.Store, user, idx.Zero)
	if err != nil {
		return domain.User{}, nil, err
	}

	l.Info("login succeeded", slog.Int64("user_id", user.ID))
	return user, pair, nil
}

// Refresh validates and rotates a refresh token, returning a fresh pair.
// Presenting an already-rotated token revokes the user's entire active
// lineage and returns ErrReuseDetected.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	claims, err := s.Codec.ParseType(rawRefresh, jwtx.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, jwtx.ErrInvalid
	}
	tokenID, err := idx.Parse(claims.ID)
	if err != nil {
		return nil, jwtx.ErrInvalid
	}

	var (
		pair  *domain.TokenPair
		reuse bool
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.RefreshTokens().GetRefreshToken(ctx, tokenID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if rec.UserID != userID {
			return ErrInvalidRefresh
		}
		if rec.Revoked {
			reuse = true
			return ErrReuseDetected
		}
		if now.After(rec.ExpiresAt) {
			// Signature validation already checked exp; the registry check
			// is defense in depth against clock drift between the two.
			return jwtx.ErrExpired
		}

		// The conditional update decides the winner under concurrent
		// rotation attempts on the same token.
		revokedNow, err := tx.RefreshTokens().RevokeRefreshToken(ctx, tokenID)
		if err != nil {
			return err
		}
		if !revokedNow {
			reuse = true
			return ErrReuseDetected
		}

		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		pair, err = s.issuePair(ctx, tx, user, tokenID)
		return err
	})
	if err != nil {
		if reuse {
			// The rotation tx rolled back; the compromise response commits
			// on its own so the lineage is revoked even on the error path.
			if revokeErr := s.Store.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID); revokeErr != nil {
				l.Error("failed to revoke lineage after reuse", "error", revokeErr, slog.Int64("user_id", userID))
			}
			l.Warn("refresh token reuse detected, lineage revoked", slog.Int64("user_id", userID))
		}
		return nil, err
	}

	return pair, nil
}

// Logout revokes exactly the presented refresh token. Revoking an already
// revoked, expired or unknown token is a no-op success.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	claims, err := s.Codec.ParseType(rawRefresh, jwtx.TokenTypeRefresh)
	if err != nil {
		// Nothing to revoke for a token we would never honour.
		return nil
	}
	tokenID, err := idx.Parse(claims.ID)
	if err != nil {
		return nil
	}

	_, err = s.Store.RefreshTokens().RevokeRefreshToken(ctx, tokenID)
	return err
}

// LogoutAll revokes every active refresh token of the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	return s.Store.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
}

// ChangePassword re-verifies the current password before writing the new
// hash, then revokes all active refresh tokens for the user so every other
// session must re-authenticate. That side effect is the point, not an
// accident.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	if len(newPassword) < s.MinPasswordLength {
		return &ValidationError{
			Field:   "new_password",
			Code:    CodeTooShort,
			Message: fmt.Sprintf("password must be at least %d characters", s.MinPasswordLength),
		}
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, newHash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
	})
	if err != nil {
		return err
	}

	l.Info("password changed, sessions invalidated", slog.Int64("user_id", userID))
	return nil
}

// issuePair mints an access/refresh token pair for user and records the
// refresh token in the registry through st (the ambient store or an open
// transaction).
func (s *AuthService) issuePair(ctx context.Context, st store.Store, user domain.User, rotatedFrom idx.ID) (*domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.Codec.Issue(jwtx.NewAccessClaims(
		user.ID, user.Username, user.Role.String(), s.Issuer, s.AccessTTL, now))
	if err != nil {
		return nil, err
	}

	tokenID := idx.New()
	refresh, err := s.Codec.Issue(jwtx.NewRefreshClaims(
		user.ID, tokenID, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return nil, err
	}

	err = st.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID:          tokenID,
		UserID:      user.ID,
		RotatedFrom: rotatedFrom,
		ExpiresAt:   now.Add(s.RefreshTTL),
	})
	if err != nil {
		// A ULID collision here means the generator invariant is broken;
		// surface it as a server fault, never retry silently.
		return nil, fmt.Errorf("record refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

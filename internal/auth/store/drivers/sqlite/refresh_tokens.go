package sqlite

import (
	"context"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/store"
	"github.com/magpress/magauth/pkg/idx"
)

type refreshTokensRepo struct {
	q querier
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, rotated_from, expires_at, revoked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		t.ID.String(), t.UserID, t.RotatedFrom.String(), t.ExpiresAt.UTC(), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *refreshTokensRepo) GetRefreshToken(ctx context.Context, id idx.ID) (domain.RefreshToken, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, rotated_from, expires_at, revoked, created_at, updated_at
		 FROM refresh_tokens WHERE id = ?`, id.String())

	var (
		t           domain.RefreshToken
		tokenID     string
		rotatedFrom string
	)
	err := row.Scan(&tokenID, &t.UserID, &rotatedFrom, &t.ExpiresAt, &t.Revoked, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	t.ID = idx.ID(tokenID)
	t.RotatedFrom = idx.ID(rotatedFrom)
	return t, nil
}

// RevokeRefreshToken is the compare-and-swap of the rotation protocol: the
// WHERE revoked = 0 clause makes exactly one concurrent caller observe the
// flip. A false return with no error means the token was already revoked or
// never recorded.
func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, id idx.ID) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE id = ? AND revoked = 0`,
		time.Now().UTC(), id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *refreshTokensRepo) RevokeAllUserRefreshTokens(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE user_id = ? AND revoked = 0`,
		time.Now().UTC(), userID)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, before.UTC())
	return err
}

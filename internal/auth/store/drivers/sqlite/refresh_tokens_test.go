package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/store"
	"github.com/magpress/magauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, username string) int64 {
	t.Helper()

	id, err := st.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         domain.RoleEditor,
	})
	require.NoError(t, err)
	return id
}

func activeToken(userID int64, ttl time.Duration) domain.RefreshToken {
	return domain.RefreshToken{
		ID:        idx.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestCreateRefreshTokenRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "alice")

	tok := activeToken(userID, time.Hour)
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, tok))

	err := st.RefreshTokens().CreateRefreshToken(ctx, tok)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRevokeRefreshTokenIsConditional(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "alice")

	tok := activeToken(userID, time.Hour)
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, tok))

	revokedNow, err := st.RefreshTokens().RevokeRefreshToken(ctx, tok.ID)
	require.NoError(t, err)
	require.True(t, revokedNow, "first revoke wins the flip")

	revokedNow, err = st.RefreshTokens().RevokeRefreshToken(ctx, tok.ID)
	require.NoError(t, err)
	require.False(t, revokedNow, "second revoke observes the existing flip")

	revokedNow, err = st.RefreshTokens().RevokeRefreshToken(ctx, idx.New())
	require.NoError(t, err)
	require.False(t, revokedNow, "unknown token is a no-op")

	rec, err := st.RefreshTokens().GetRefreshToken(ctx, tok.ID)
	require.NoError(t, err)
	require.True(t, rec.Revoked)
	require.False(t, rec.Active(time.Now()))
}

func TestRevokeAllUserRefreshTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	aliceTok1 := activeToken(alice, time.Hour)
	aliceTok2 := activeToken(alice, time.Hour)
	bobTok := activeToken(bob, time.Hour)
	for _, tok := range []domain.RefreshToken{aliceTok1, aliceTok2, bobTok} {
		require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, tok))
	}

	require.NoError(t, st.RefreshTokens().RevokeAllUserRefreshTokens(ctx, alice))

	for _, id := range []idx.ID{aliceTok1.ID, aliceTok2.ID} {
		rec, err := st.RefreshTokens().GetRefreshToken(ctx, id)
		require.NoError(t, err)
		require.True(t, rec.Revoked)
	}

	rec, err := st.RefreshTokens().GetRefreshToken(ctx, bobTok.ID)
	require.NoError(t, err)
	require.False(t, rec.Revoked, "other users' tokens untouched")

	// Idempotent.
	require.NoError(t, st.RefreshTokens().RevokeAllUserRefreshTokens(ctx, alice))
}

func TestDeleteExpiredRefreshTokensHonoursCutoff(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "alice")

	longExpired := activeToken(userID, -48*time.Hour)
	recentlyExpired := activeToken(userID, -time.Hour)
	live := activeToken(userID, time.Hour)
	for _, tok := range []domain.RefreshToken{longExpired, recentlyExpired, live} {
		require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, tok))
	}

	// Retention window: only rows expired more than 24h ago go.
	cutoff := time.Now().Add(-24 * time.Hour)
	require.NoError(t, st.RefreshTokens().DeleteExpiredRefreshTokens(ctx, cutoff))

	_, err := st.RefreshTokens().GetRefreshToken(ctx, longExpired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.RefreshTokens().GetRefreshToken(ctx, recentlyExpired.ID)
	require.NoError(t, err, "kept for reuse detection")
	_, err = st.RefreshTokens().GetRefreshToken(ctx, live.ID)
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "alice")

	tok := activeToken(userID, time.Hour)
	boom := context.Canceled // any sentinel will do

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().CreateRefreshToken(ctx, tok); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.RefreshTokens().GetRefreshToken(ctx, tok.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "rollback leaves no partial state")
}

func TestRotationLineageIsRecorded(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "alice")

	first := activeToken(userID, time.Hour)
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, first))

	second := activeToken(userID, time.Hour)
	second.RotatedFrom = first.ID
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, second))

	rec, err := st.RefreshTokens().GetRefreshToken(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, rec.RotatedFrom)
}

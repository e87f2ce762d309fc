package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/magpress/magauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "magauth-test"

func testCodec() *Codec {
	return NewCodec([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
}

func TestIssueAndParseAccessToken(t *testing.T) {
	t.Parallel()

	codec := testCodec()
	now := time.Now()

	raw, err := codec.Issue(NewAccessClaims(42, "alice", "editor", testIssuer, time.Minute, now))
	require.NoError(t, err)
	require.Len(t, strings.Split(raw, "."), 3, "compact JWT has three segments")

	claims, err := codec.ParseType(raw, TokenTypeAccess)
	require.NoError(t, err)

	uid, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), uid)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "editor", claims.Role)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
	require.WithinDuration(t, now.Add(time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	codec := testCodec()
	raw, err := codec.Issue(NewAccessClaims(1, "alice", "admin", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	parts := strings.Split(raw, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Parse(tampered)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	t.Parallel()

	other := NewCodec([]byte("another-secret-key-32-bytes-long"), testIssuer)
	raw, err := other.Issue(NewAccessClaims(1, "alice", "admin", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = testCodec().Parse(raw)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := testCodec()
	raw, err := codec.Issue(NewAccessClaims(1, "alice", "editor", testIssuer, time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = codec.Parse(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestTamperedAndExpiredSurfacesInvalid(t *testing.T) {
	t.Parallel()

	codec := testCodec()
	raw, err := codec.Issue(NewAccessClaims(1, "alice", "editor", testIssuer, time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = codec.Parse(tampered)
	require.ErrorIs(t, err, ErrInvalid, "signature failure must win over expiry")
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	codec := testCodec()
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "!.!.!"} {
		_, err := codec.Parse(raw)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestParseTypeEnforcesDiscriminator(t *testing.T) {
	t.Parallel()

	codec := testCodec()
	now := time.Now()

	access, err := codec.Issue(NewAccessClaims(7, "bob", "editor", testIssuer, time.Minute, now))
	require.NoError(t, err)
	refresh, err := codec.Issue(NewRefreshClaims(7, idx.New(), testIssuer, time.Hour, now))
	require.NoError(t, err)

	_, err = codec.ParseType(refresh, TokenTypeAccess)
	require.ErrorIs(t, err, ErrTokenType, "refresh token must not pass as access")

	_, err = codec.ParseType(access, TokenTypeRefresh)
	require.ErrorIs(t, err, ErrTokenType, "access token must not pass as refresh")

	claims, err := codec.ParseType(refresh, TokenTypeRefresh)
	require.NoError(t, err)
	_, err = idx.Parse(claims.ID)
	require.NoError(t, err, "refresh jti is a ULID")
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	t.Parallel()

	foreign := NewCodec([]byte("0123456789abcdef0123456789abcdef"), "someone-else")
	raw, err := foreign.Issue(NewAccessClaims(1, "alice", "editor", "someone-else", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = testCodec().Parse(raw)
	require.ErrorIs(t, err, ErrInvalid)
}

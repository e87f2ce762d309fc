// Package store defines the data-access boundary of the auth service: the
// user directory it reads and the refresh-token registry it owns. Concrete
// drivers live under drivers/.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn errors
	// and committing otherwise. Refresh-token rotation runs through this so
	// revoking the old record and inserting the new one is one atomic step.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the user-directory collaborator. The auth service does not own
// this schema beyond the fields it reads and the password hash it updates.
type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the assigned id. Returns
	// ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error

	// DeleteUser cascades to refresh_tokens (per schema).
	DeleteUser(ctx context.Context, userID int64) error
}

// RefreshTokens is the refresh-token registry: the only shared mutable state
// in the service. It exclusively owns the revocation records; clients hold
// the signed token values.
type RefreshTokens interface {
	// CreateRefreshToken records a freshly issued token id as active.
	// Returns ErrAlreadyExists when the id was already recorded, which under
	// ULID generation indicates a broken invariant rather than a user error.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	GetRefreshToken(ctx context.Context, id idx.ID) (domain.RefreshToken, error)

	// RevokeRefreshToken conditionally flips revoked=1 and reports whether
	// this call performed the flip. The conditional update is the
	// compare-and-swap that makes concurrent rotations of the same token
	// resolve to exactly one winner.
	RevokeRefreshToken(ctx context.Context, id idx.ID) (revokedNow bool, err error)

	// RevokeAllUserRefreshTokens revokes every active token of a user, used
	// on password change and on reuse detection. Idempotent.
	RevokeAllUserRefreshTokens(ctx context.Context, userID int64) error

	// DeleteExpiredRefreshTokens evicts records that expired before the
	// cutoff. Retaining rows for a window past expiry keeps reuse detection
	// working for late replays.
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) error
}

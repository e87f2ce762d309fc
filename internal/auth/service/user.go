package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/magpress/magauth/internal/auth/domain"
	"github.com/magpress/magauth/internal/auth/store"
	"github.com/magpress/magauth/pkg/cryptox"
	"github.com/magpress/magauth/pkg/slogx"
)

// Username and email constraints mirror the user directory's schema.
const (
	minUsernameLength = 3
	maxUsernameLength = 50
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// UserService fronts the external user directory for the operations the
// auth boundary exposes: admin-driven registration and deletion, and
// identity lookups for /me.
type UserService struct {
	Store             store.Store
	MinPasswordLength int
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// Register creates a new user. Duplicate usernames and emails surface as
// field-level validation errors, matching registration being an
// admin-facing operation where enumeration is not a concern.
func (s *UserService) Register(ctx context.Context, username, email, password string, role domain.Role) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := s.validateNewUser(username, email, password, role); err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, &ValidationError{Field: "username", Code: CodeDuplicateValue, Message: "Username already exists"}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}

	if email != "" {
		if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
			return domain.User{}, &ValidationError{Field: "email", Code: CodeDuplicateValue, Message: "Email already exists"}
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, fmt.Errorf("check email: %w", err)
		}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	id, err := s.Store.Users().CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent registration; the pre-checks
			// above make this the uncommon path.
			return domain.User{}, &ValidationError{Field: "username", Code: CodeDuplicateValue, Message: "Username already exists"}
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	l.Info("user registered", slog.Int64("user_id", id), slog.String("role", role.String()))
	return user, nil
}

// Delete removes a user from the directory; the schema cascades to their
// refresh tokens. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, actor domain.Identity, targetID int64) error {
	if actor.UserID == targetID {
		return ErrCannotDeleteSelf
	}
	return s.Store.Users().DeleteUser(ctx, targetID)
}

func (s *UserService) validateNewUser(username, email, password string, role domain.Role) error {
	switch {
	case username == "":
		return &ValidationError{Field: "username", Code: CodeRequired, Message: "Username is required"}
	case len(username) < minUsernameLength:
		return &ValidationError{Field: "username", Code: CodeTooShort,
			Message: fmt.Sprintf("Username must be at least %d characters", minUsernameLength)}
	case len(username) > maxUsernameLength:
		return &ValidationError{Field: "username", Code: CodeTooLong,
			Message: fmt.Sprintf("Username must be at most %d characters", maxUsernameLength)}
	case !usernamePattern.MatchString(username):
		return &ValidationError{Field: "username", Code: CodeInvalidFormat,
			Message: "Username may only contain letters, digits and underscores"}
	}

	if email != "" && !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Code: CodeInvalidFormat, Message: "Email address is invalid"}
	}

	if len(password) < s.MinPasswordLength {
		return &ValidationError{Field: "password", Code: CodeTooShort,
			Message: fmt.Sprintf("Password must be at least %d characters", s.MinPasswordLength)}
	}

	if _, err := domain.ParseRole(role.String()); err != nil {
		return &ValidationError{Field: "role", Code: CodeUnknownValue, Message: "Role must be editor or admin"}
	}
	return nil
}

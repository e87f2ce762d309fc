package domain

import "errors"

// Role is the closed two-level role set. Admin is a strict superset of
// editor; there are no custom grants.
type Role string

const (
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// ErrUnknownRole reports a role name outside the closed set.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates s against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEditor, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// Meets reports whether r grants at least the permissions of min under the
// ordering editor < admin.
func (r Role) Meets(min Role) bool {
	return r.level() >= min.level()
}

func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleEditor:
		return 1
	default:
		return 0
	}
}

// String returns the role name.
func (r Role) String() string { return string(r) }

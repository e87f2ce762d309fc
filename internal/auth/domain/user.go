package domain

import "time"

// User is the stored user-directory record. The auth service reads it and
// writes password-hash updates; registration workflows own everything else.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // argon2id PHC encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the immutable-at-auth-time view of a user resolved from an
// access token. It carries no credential material.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}

// Identity derives the auth-time view from a directory record.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

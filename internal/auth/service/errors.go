package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown-user and wrong-password so
	// login responses cannot be used for user enumeration.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidRefresh reports a refresh token the registry does not know:
	// never recorded, or already evicted.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	// ErrReuseDetected reports presentation of an already-rotated refresh
	// token. By the time a caller sees this the whole lineage has been
	// revoked. The HTTP layer surfaces it as a plain authentication failure.
	ErrReuseDetected = errors.New("refresh_token_reuse_detected")

	// ErrInsufficientRole reports an authorization denial under the role
	// ordering editor < admin.
	ErrInsufficientRole = errors.New("insufficient_role")

	// ErrCannotDeleteSelf guards admins against deleting their own account.
	ErrCannotDeleteSelf = errors.New("cannot_delete_self")
)

// ValidationError carries field-level detail for malformed input. Surfaced
// verbatim in the error envelope's details object.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Validation detail codes.
const (
	CodeDuplicateValue = "DUPLICATE_VALUE"
	CodeTooShort       = "TOO_SHORT"
	CodeTooLong        = "TOO_LONG"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeUnknownValue   = "UNKNOWN_VALUE"
	CodeRequired       = "REQUIRED"
)

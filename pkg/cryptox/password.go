// Package cryptox owns password credential hashing. Hashes are Argon2id in
// PHC string format, so parameters travel with the hash and can be tuned
// without invalidating stored credentials.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. OWASP-recommended baseline for interactive logins.
const (
	saltLength  = 16
	keyLength   = 32
	iterations  = 3
	memory      = 64 * 1024 // KiB
	parallelism = 2
)

// ErrMismatch is returned by VerifyPassword when the password does not match
// the stored hash. Callers must not surface it differently from an unknown
// user; the service layer maps both onto one authentication failure.
var ErrMismatch = errors.New("cryptox: password does not match")

// HashPassword generates a PHC-format Argon2id hash with a fresh random
// salt. Hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// hash using a constant-time comparison. Returns ErrMismatch on failure and
// a descriptive error for structurally invalid hashes.
func VerifyPassword(password, encodedHash string) error {
	salt, expected, params, err := decodeHash(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		params.iterations,
		params.memory,
		params.parallelism,
		uint32(len(expected)),
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

type hashParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func decodeHash(encoded string) (salt, key []byte, params hashParams, err error) {
	// Expected form: $argon2id$v=19$m=X,t=Y,p=Z$<salt>$<key>
	var fields [6]string
	n := 0
	start := 0
	for i := 0; i <= len(encoded); i++ {
		if i == len(encoded) || encoded[i] == '$' {
			if n >= len(fields) {
				return nil, nil, params, errors.New("cryptox: invalid hash format")
			}
			fields[n] = encoded[start:i]
			n++
			start = i + 1
		}
	}
	if n != 6 || fields[1] != "argon2id" {
		return nil, nil, params, errors.New("cryptox: invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, params, errors.New("cryptox: unsupported argon2 version")
	}
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d",
		&params.memory, &params.iterations, &params.parallelism); err != nil {
		return nil, nil, params, errors.New("cryptox: invalid hash parameters")
	}

	salt, err = base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return nil, nil, params, errors.New("cryptox: invalid hash salt")
	}
	key, err = base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return nil, nil, params, errors.New("cryptox: invalid hash key")
	}
	return salt, key, params, nil
}

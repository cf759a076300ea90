// Package auth implements the optional single-operator authentication:
// one bcrypt-hashed password, exchanged at login for a signed JWT.
//
// The ledger is a single-user tool; when no password hash is configured
// the API runs open and this package stays out of the request path.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// PasswordVerifier checks login attempts against a configured bcrypt hash.
type PasswordVerifier struct {
	hash []byte
}

// NewPasswordVerifier creates a verifier for the given bcrypt hash
// (as produced by HashPassword or cmd/hashpw).
func NewPasswordVerifier(bcryptHash string) *PasswordVerifier {
	return &PasswordVerifier{hash: []byte(bcryptHash)}
}

// Verify compares a password attempt against the configured hash.
// Returns ErrInvalidCredentials on mismatch.
func (v *PasswordVerifier) Verify(password string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for the verifier.
// Enforces a minimum length before hashing.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Package auth provides one-way hashing and verification for file passwords.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash is returned when a stored hash is not a value this
// package produced. It indicates a corrupted record, not a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword hashes one plaintext password for persistent storage.
// The output is salted, so hashing the same password twice yields
// different strings.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword verifies a plaintext candidate against a bcrypt hash.
// A well-formed non-matching candidate returns (false, nil). A hash this
// package could not have produced returns (false, ErrMalformedHash).
func VerifyPassword(passwordHash, candidate string) (bool, error) {
	if strings.TrimSpace(passwordHash) == "" {
		return false, ErrMalformedHash
	}
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrMalformedHash
}

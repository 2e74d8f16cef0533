package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch is returned by CheckPassword for a wrong password.
	ErrMismatch = errors.New("auth: password mismatch")

	// ErrPasswordTooLong is returned by HashPassword for passwords bcrypt
	// would reject.
	ErrPasswordTooLong = errors.New("auth: password too long")
)

const (
	// MinPasswordLength matches the signup binding rule.
	MinPasswordLength = 8

	// MaxPasswordBytes is bcrypt's input limit. The binding rule counts
	// characters, so multi-byte passwords are also checked here.
	MaxPasswordBytes = 72
)

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: %d bytes, at most %d allowed", ErrPasswordTooLong, len(password), MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password against a stored bcrypt hash.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	return nil
}

// RandomSecret returns a hex string with n bytes of entropy.
func RandomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

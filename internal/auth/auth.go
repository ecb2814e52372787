// Package auth checks login credentials against a bcrypt hash kept in the
// credential store.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/workdesk/internal/credential"
)

// PasswordKey is the credential key holding the password hash.
const PasswordKey = "password-hash"

var (
	// ErrInvalidCredentials is returned for a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNoCredential is returned when no password has been set yet.
	ErrNoCredential = errors.New("no password set; run `workdesk passwd`")
)

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Authenticator verifies a single configured login.
type Authenticator struct {
	username string
	secrets  credential.Store
}

// New returns an Authenticator for username.
func New(username string, secrets credential.Store) *Authenticator {
	return &Authenticator{username: username, secrets: secrets}
}

// Username returns the configured login name.
func (a *Authenticator) Username() string {
	return a.username
}

// Verify checks username and password.
func (a *Authenticator) Verify(username, password string) error {
	hash, err := a.secrets.Get(PasswordKey)
	if errors.Is(err, credential.ErrNotFound) {
		return ErrNoCredential
	}
	if err != nil {
		return fmt.Errorf("loading password hash: %w", err)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil || !userOK {
		return ErrInvalidCredentials
	}
	return nil
}

// SetPassword stores a new password hash.
func (a *Authenticator) SetPassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := a.secrets.Set(PasswordKey, hash); err != nil {
		return fmt.Errorf("storing password hash: %w", err)
	}
	return nil
}

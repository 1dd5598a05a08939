package service

import (
	"github.com/spendwise/expense-api/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// CredentialStore hashes and verifies passwords with bcrypt. Plaintext never
// leaves this type; each hash carries its own salt, so two hashes of the same
// password differ while verification stays deterministic.
type CredentialStore struct {
	cost int
}

// NewCredentialStore returns a CredentialStore with the given bcrypt cost.
// A non-positive cost falls back to bcrypt.DefaultCost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// Hash derives a salted hash from password. Passwords shorter than
// MinPasswordLength are rejected with a field-level validation error.
func (s *CredentialStore) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		ve := domain.NewValidationError()
		ve.Add("password", "must be at least 6 characters")
		return "", ve
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. It never returns an error on
// mismatch; bcrypt's comparison is not vulnerable to timing on the password.
func (s *CredentialStore) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

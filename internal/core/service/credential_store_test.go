package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/expense-api/internal/core/domain"
)

func TestCredentialStore_HashAndVerify(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)

	hash, err := store.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !store.Verify("s3cret", hash) {
		t.Fatalf("Verify should accept the original password")
	}
	if store.Verify("wrong", hash) {
		t.Fatalf("Verify should reject a different password")
	}
}

func TestCredentialStore_SaltedStorage(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)

	h1, _ := store.Hash("samepass")
	h2, _ := store.Hash("samepass")
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ (per-record salt)")
	}
	if !store.Verify("samepass", h1) || !store.Verify("samepass", h2) {
		t.Fatalf("both hashes should verify against the password")
	}
}

func TestCredentialStore_ShortPassword(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)

	_, err := store.Hash("12345")
	if err == nil {
		t.Fatalf("expected error for password shorter than %d", MinPasswordLength)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if _, ok := ve.Fields["password"]; !ok {
		t.Fatalf("expected a password field error, got %v", ve.Fields)
	}
}

func TestCredentialStore_VerifyNeverPanicsOnGarbage(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)
	if store.Verify("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("Verify should return false for a malformed hash")
	}
}

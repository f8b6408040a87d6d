package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected a bcrypt-encoded hash, got %q", hash)
	}
	if strings.Contains(hash, "correct horse") {
		t.Error("hash must not contain the plaintext password")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Error("expected error for empty password, got nil")
	}
}

func TestHashPassword_NotDeterministic(t *testing.T) {
	// bcrypt salts every hash, two hashes of the same input must differ
	h1, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct salted hashes for the same password")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !CheckPassword("password123", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("password124", hash) {
		t.Error("expected wrong password to fail verification")
	}
	if CheckPassword("password123", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail verification")
	}
}

package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from the given plaintext password.
//
// The cost parameter controls the work factor; pass bcrypt.DefaultCost
// unless the configuration overrides it. The plaintext is never stored —
// callers must persist only the returned hash.
//
// Returns:
//
//	string - the bcrypt hash in its standard encoded form
//	error  - non-nil if the password is empty or hashing fails
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password cannot be hashed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
//
// Returns true when the password matches the hash. A false result covers
// both mismatches and malformed hashes; callers should surface a single
// generic credential error either way so that the failing check is not
// distinguishable by the client.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

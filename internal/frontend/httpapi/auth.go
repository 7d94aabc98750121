package httpapi

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the caller's API key.
const APIKeyHeader = "X-API-Key"

// HashAPIKey returns the bcrypt hash of key for use as http.api_key_hash.
//
// Precondition: key must be non-empty and at most 72 bytes.
// Postcondition: Returns a bcrypt hash or a non-nil error.
func HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("api key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing api key: %w", err)
	}
	return string(hash), nil
}

// CheckAPIKey reports whether key matches the bcrypt hash.
func CheckAPIKey(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

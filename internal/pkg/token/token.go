package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Generate returns a cryptographically random 256-bit token in URL-safe
// base64 without padding. A raw token travels to the client exactly once
// and is never stored; persist only Hash(token).
func Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash returns the hex-encoded SHA-256 digest of a raw token. This is the
// only representation of a token that may be written to storage or logs.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Hex returns n random bytes hex-encoded (2n characters).
func Hex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate hex token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

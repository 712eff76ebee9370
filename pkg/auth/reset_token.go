package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// ResetTokenGenerator generates and hashes password-reset tokens. The raw
// token is sent to the user exactly once; only its hash is persisted.
type ResetTokenGenerator interface {
	// Generate creates a new high-entropy raw token.
	Generate() (string, error)
	// Hash returns the SHA-256 hash of a raw token as stored on the user.
	Hash(token string) string
	// CompareHashes securely compares two token hashes.
	CompareHashes(hash1, hash2 string) bool
}

type resetTokenGenerator struct{}

// NewResetTokenGenerator creates a new ResetTokenGenerator.
func NewResetTokenGenerator() ResetTokenGenerator {
	return &resetTokenGenerator{}
}

// Generate creates a 64-character hex token from 32 random bytes.
func (g *resetTokenGenerator) Generate() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Hash returns the SHA-256 hash of the token as a hex string.
func (g *resetTokenGenerator) Hash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// CompareHashes securely compares two token hashes using constant-time comparison.
func (g *resetTokenGenerator) CompareHashes(hash1, hash2 string) bool {
	return subtle.ConstantTimeCompare([]byte(hash1), []byte(hash2)) == 1
}

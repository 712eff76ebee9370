// Package auth provides authentication primitives: password hashing, JWT
// session tokens and password-reset tokens.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor. Deliberately above the default:
// slow hashing is the point.
const PasswordHashCost = 12

// HashPassword generates a bcrypt hash from a plain text password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a plain text password with a stored hash.
// bcrypt's comparison is constant-time. Returns nil on match.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Package auth derives and verifies password hashes.
package auth

import "golang.org/x/crypto/bcrypt"

// Cost 14 keeps a single verification in the tens of milliseconds on
// current hardware.
const hashCost = 14

// HashPassword returns a bcrypt hash suitable for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plaintext password matches a
// stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

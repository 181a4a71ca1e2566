// Package cryptox implements the credential store: one-way adaptive
// password hashing and verification. Stored passwords only ever exist as
// bcrypt hashes; plaintext never leaves this package's call frames.
package cryptox

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor applied to every stored password.
const HashCost = 10

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// bcrypt's comparison does not short-circuit on early mismatch.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Package password wraps bcrypt hashing of user credentials. Hashes embed a
// random salt, so hashing the same password twice yields different outputs.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt digest of plain. The plaintext is never logged or
// stored.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. A malformed stored
// hash verifies false rather than returning an error.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

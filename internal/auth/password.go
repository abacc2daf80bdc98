package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches verifies a candidate password against its stored bcrypt hash.
// Any bcrypt error, including a malformed hash, yields false.
func Matches(candidate, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// IsDefaultPassword reports whether the stored hash is the hash of the
// known placeholder password, signalling a forced change to the client.
func IsDefaultPassword(defaultPassword, storedHash string) bool {
	return Matches(defaultPassword, storedHash)
}

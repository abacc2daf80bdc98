package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestMatches_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !Matches("secret", hash) {
		t.Error("Matches() = false for correct password")
	}
	if Matches("wrong", hash) {
		t.Error("Matches() = true for wrong password")
	}
}

func TestMatches_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "secret"},
		{"truncated", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Matches("secret", tt.hash) {
				t.Error("Matches() = true for malformed hash")
			}
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should have different salts")
	}
}

func TestIsDefaultPassword(t *testing.T) {
	defaultHash, err := HashPassword("Jo5hu4!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	otherHash, err := HashPassword("Abcdef1!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !IsDefaultPassword("Jo5hu4!", defaultHash) {
		t.Error("IsDefaultPassword() = false for the default password hash")
	}
	if IsDefaultPassword("Jo5hu4!", otherHash) {
		t.Error("IsDefaultPassword() = true for a changed password hash")
	}
}

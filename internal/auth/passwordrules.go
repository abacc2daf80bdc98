package auth

import (
	"fmt"
	"strings"
	"unicode"
)

// Complexity policy for new passwords: length 6-14 with at least one
// digit, one lowercase letter, one uppercase letter and one special
// character from the fixed set.
const (
	passwordMinLen   = 6
	passwordMaxLen   = 14
	passwordSpecials = "-!$#%"
)

// PasswordPolicyMessage is returned to clients when a new password is
// rejected.
var PasswordPolicyMessage = fmt.Sprintf(
	"password must be %d-%d characters with at least one uppercase letter, one lowercase letter, one digit and one special character (%s)",
	passwordMinLen, passwordMaxLen, passwordSpecials)

// CheckPasswordComplexity reports whether the candidate satisfies the
// complexity policy.
func CheckPasswordComplexity(password string) bool {
	runes := []rune(password)
	if len(runes) < passwordMinLen || len(runes) > passwordMaxLen {
		return false
	}

	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			hasSpecial = true
		}
	}
	return hasDigit && hasLower && hasUpper && hasSpecial
}

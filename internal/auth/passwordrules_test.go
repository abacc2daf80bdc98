package auth

import "testing"

func TestCheckPasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes, mid length", "Abcdef1!", true},
		{"minimum length 6", "Ab1!cd", true},
		{"maximum length 14", "Abcdefghijk1!-", true},
		{"default password shape", "Jo5hu4!", true},
		{"every special accepted", "Aa1-!$#%", true},
		{"length 5", "Ab1!c", false},
		{"length 15", "Abcdefghijkl12!", false},
		{"no digit", "Abcdef!!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no special", "Abcdef12", false},
		{"special outside fixed set", "Abcdef1@", false},
		{"too short and missing classes", "abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPasswordComplexity(tt.password); got != tt.want {
				t.Errorf("CheckPasswordComplexity(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

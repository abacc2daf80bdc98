package dto

import "github.com/spec-kit/crm-service/internal/domain"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard envelope for login and refresh.
type AuthResponse struct {
	Token                  string      `json:"token"`
	Role                   domain.Role `json:"role"`
	RequiresPasswordChange bool        `json:"requiresPasswordChange"`
}

// PasswordChangeRequest payload for password updates. ConfirmPassword
// is a client-side convenience and is not re-validated server-side.
type PasswordChangeRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

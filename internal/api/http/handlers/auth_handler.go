package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// AuthHandler exposes the login and refresh entry points.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:                  result.Token,
		Role:                   result.Role,
		RequiresPasswordChange: result.RequiresPasswordChange,
	}})
}

// Refresh handles POST /api/auth/refresh. The bearer token is read
// directly from the header rather than the request identity: this is
// the entry point that produces new tokens.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.auth.Refresh(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:                  result.Token,
		Role:                   result.Role,
		RequiresPasswordChange: result.RequiresPasswordChange,
	}})
}

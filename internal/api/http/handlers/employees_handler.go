package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// EmployeesHandler exposes the employee directory and password change.
type EmployeesHandler struct {
	auth      *service.AuthService
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(authService *service.AuthService, employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{auth: authService, employees: employeeService}
}

// ChangePassword handles PUT /api/employees/password for the
// authenticated caller.
func (h *EmployeesHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("oldPassword and newPassword required", nil)
	}

	if err := h.auth.ChangePassword(c.UserContext(), identity, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "password updated successfully"}})
}

// Me handles GET /api/employees/me.
func (h *EmployeesHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	employee, err := h.employees.Profile(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee)})
}

// List handles GET /api/employees. Managers only; enforced on the route.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponses(employees)})
}

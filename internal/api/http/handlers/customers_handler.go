package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// CustomersHandler exposes role-scoped customer listings.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customerService}
}

// List handles GET /api/customers with an optional city filter. The
// visible set depends on the caller's role, not on extra route gating.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	customers, err := h.customers.ListForIdentity(c.UserContext(), identity, c.Query("city"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewCustomerResponses(customers)})
}

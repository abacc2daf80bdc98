package handlers

import "github.com/gofiber/fiber/v2"

// DocsHandler serves a small endpoint-introspection document on the
// public docs surface.
type DocsHandler struct {
	serviceName string
	version     string
}

// NewDocsHandler returns a new handler instance.
func NewDocsHandler(serviceName, version string) *DocsHandler {
	return &DocsHandler{serviceName: serviceName, version: version}
}

type endpointDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Access string `json:"access"`
	Notes  string `json:"notes,omitempty"`
}

// Index handles GET /docs.
func (h *DocsHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.serviceName,
		"version": h.version,
		"endpoints": []endpointDoc{
			{Method: "POST", Path: "/api/auth/login", Access: "public", Notes: "returns {token, role, requiresPasswordChange}"},
			{Method: "POST", Path: "/api/auth/refresh", Access: "public", Notes: "bearer token of a manager required"},
			{Method: "PUT", Path: "/api/employees/password", Access: "authenticated"},
			{Method: "GET", Path: "/api/employees/me", Access: "authenticated"},
			{Method: "GET", Path: "/api/employees", Access: "manager"},
			{Method: "GET", Path: "/api/customers", Access: "authenticated", Notes: "managers see all customers, employees only their own"},
			{Method: "GET", Path: "/health/live", Access: "public"},
			{Method: "GET", Path: "/health/ready", Access: "public"},
		},
	})
}

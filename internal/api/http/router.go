package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Docs      *handlers.DocsHandler
	Auth      *handlers.AuthHandler
	Employees *handlers.EmployeesHandler
	Customers *handlers.CustomersHandler
	Gate      *auth.Gate
	Policy    *auth.Policy
}

// RegisterRoutes wires HTTP routes behind the authentication gate and
// the access policy. The gate only attaches identities; the policy
// middleware is what rejects unauthenticated callers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)
	app.Use(auth.Enforce(cfg.Policy))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/docs", cfg.Docs.Index)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	employees := api.Group("/employees")
	employees.Put("/password", cfg.Employees.ChangePassword)
	employees.Get("/me", cfg.Employees.Me)
	employees.Get("", auth.RequireManager(), cfg.Employees.List)

	api.Get("/customers", cfg.Customers.List)
}

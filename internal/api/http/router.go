package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/isp-support-service/internal/api/http/handlers"
	"github.com/spec-kit/isp-support-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tracking       *handlers.TrackingHandler
	Coverage       *handlers.CoverageHandler
	Requests       *handlers.RequestsHandler
	Staff          *handlers.StaffHandler
	StaffTickets   *handlers.StaffTicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The tracking route carries its own
// stricter rate limit inside the tracking service; everything under /admin
// requires a staff token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/track", cfg.Tracking.Track)
	api.Get("/coverage", cfg.Coverage.Check)
	api.Post("/requests/contract", cfg.Requests.CreateContract)
	api.Post("/requests/fault", cfg.Requests.CreateFault)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())
	admin.Get("/tickets", cfg.StaffTickets.List)
	admin.Get("/tickets/:id", cfg.StaffTickets.Get)
	admin.Post("/tickets/:id/transition", cfg.StaffTickets.Transition)
	admin.Post("/tickets/:id/notes", cfg.StaffTickets.AddNote)
	admin.Post("/tickets/:id/assign", cfg.StaffTickets.Assign)
}

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sekolah-admin-api/internal/config"
	"github.com/noah-isme/sekolah-admin-api/internal/handler"
	"github.com/noah-isme/sekolah-admin-api/internal/middleware"
	"github.com/noah-isme/sekolah-admin-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AnnouncementHandler *handler.AnnouncementHandler
	AlertHandler        *handler.AlertHandler
	ExamHandler         *handler.ExamHandler
	ExpenseHandler      *handler.ExpenseHandler
	DashboardHandler    *handler.DashboardHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := api.Group("", jwtMiddleware)

	writeLimiter := middleware.WriteLimit("mutations", cfg.WriteRateLimit, time.Minute)
	protected.Use(func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
			return writeLimiter(c)
		}
		return c.Next()
	})

	elevated := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStaff)

	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(protected.Group("/announcements"), elevated)
	}
	if deps.AlertHandler != nil {
		deps.AlertHandler.Register(protected.Group("/alerts"), elevated)
	}
	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(protected.Group("/exams"), elevated)
	}
	if deps.ExpenseHandler != nil {
		deps.ExpenseHandler.Register(protected.Group("/expenses"), elevated)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(protected.Group("/dashboard", elevated))
	}
}

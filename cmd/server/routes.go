package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shapecalc/shapecalc/internal/middleware"
)

// registerRoutes registers all application routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Operational routes
	deps.HealthHandler.RegisterRoutes(app)
	app.Get("/metrics", middleware.MetricsHandler())
	deps.DocsHandler.RegisterRoutes(app)

	// Frontend pages
	deps.PagesHandler.RegisterRoutes(app)

	// Calculation API
	deps.CalculatorHandler.RegisterRoutes(app)
}

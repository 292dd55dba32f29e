package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-service/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, healthHandler *handlers.HealthHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Server is running",
			"service": "People Service",
		})
	})

	// Detailed health check (checks all components)
	if healthHandler != nil {
		app.Get("/health/detailed", healthHandler.DetailedHealth)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to People Service",
			"version": "1.0.0",
			"people":  "/people",
			"health":  "/health",
		})
	})
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-service/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	// Setup health and root routes
	SetupHealthRoutes(app, h.Health)

	// People resource lives at the root, not under a version prefix
	SetupPersonRoutes(app, h)
}

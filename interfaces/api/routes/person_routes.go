package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-service/interfaces/api/handlers"
)

func SetupPersonRoutes(app *fiber.App, h *handlers.Handlers) {
	people := app.Group("/people")

	people.Get("/", h.Person.GetAllPeople)
	people.Post("/", h.Person.AddPerson)
	people.Get("/:id", h.Person.GetPerson)
	people.Put("/:id", h.Person.UpdatePerson)
	people.Delete("/:id", h.Person.DeletePerson)
}

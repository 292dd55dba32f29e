package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"people-service/domain/dto"
	"people-service/domain/services"
	"people-service/interfaces/api/middleware"
	"people-service/pkg/logger"
	"people-service/pkg/utils"
)

type PersonHandler struct {
	personService services.PersonService
}

func NewPersonHandler(personService services.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// GetAllPeople returns every person
// @Summary List people
// @Tags People
// @Produce json
// @Success 200 {array} dto.PersonResponse
// @Router /people [get]
func (h *PersonHandler) GetAllPeople(c *fiber.Ctx) error {
	people, err := h.personService.ReadAll(c.UserContext())
	if err != nil {
		return h.serviceError(c, "list_failed", err)
	}
	return c.JSON(dto.PeopleToResponse(people))
}

// GetPerson returns one person
// @Summary Get person
// @Tags People
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} utils.Response
// @Router /people/{id} [get]
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return personNotFound(c)
	}

	person, err := h.personService.Get(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, "get_failed", err)
	}
	return c.JSON(dto.PersonToResponse(person))
}

// AddPerson creates a person; avatarImageUrl in the body is ignored
// @Summary Create person
// @Tags People
// @Accept json
// @Produce json
// @Param request body dto.PersonRequest true "Person"
// @Success 200 {object} dto.PersonResponse
// @Router /people [post]
func (h *PersonHandler) AddPerson(c *fiber.Ctx) error {
	var req dto.PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	person, err := h.personService.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return h.serviceError(c, "create_failed", err)
	}
	return c.JSON(dto.PersonToResponse(person))
}

// UpdatePerson replaces name, gender and age
// @Summary Update person
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param request body dto.PersonRequest true "Person"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} utils.Response
// @Router /people/{id} [put]
func (h *PersonHandler) UpdatePerson(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return personNotFound(c)
	}

	var req dto.PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	person, err := h.personService.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return h.serviceError(c, "update_failed", err)
	}
	return c.JSON(dto.PersonToResponse(person))
}

// DeletePerson removes a person
// @Summary Delete person
// @Tags People
// @Param id path string true "Person ID"
// @Success 200
// @Failure 404 {object} utils.Response
// @Router /people/{id} [delete]
func (h *PersonHandler) DeletePerson(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return personNotFound(c)
	}

	if err := h.personService.Delete(c.UserContext(), id); err != nil {
		return h.serviceError(c, "delete_failed", err)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

// parseID reads the :id param. An id that is not a UUID cannot exist.
func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func personNotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "Person not found with id "+c.Params("id"), nil)
}

func (h *PersonHandler) serviceError(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, services.ErrPersonNotFound) {
		return personNotFound(c)
	}

	logger.Error(logger.CategoryAPI, action, "Person request failed", err, map[string]interface{}{
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": middleware.RequestID(c),
	})
	return utils.InternalServerErrorResponse(c, "Failed to process person request")
}

package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope used for error bodies
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	response := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	return c.Status(statusCode).JSON(response)
}

func BadRequestResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, fiber.StatusBadRequest, message, err)
}

func NotFoundResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, fiber.StatusNotFound, message, err)
}

// InternalServerErrorResponse hides err from the client; callers log it.
func InternalServerErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, message, nil)
}

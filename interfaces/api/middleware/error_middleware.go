package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"people-service/pkg/logger"
	"people-service/pkg/utils"
)

// ErrorHandler renders errors that escape a handler. Only *fiber.Error codes
// are trusted; anything else is a 500 and its text is not sent to the client.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		logger.Error(logger.CategoryAPI, "error_handler", "Request error occurred", err, map[string]interface{}{
			"status_code": code,
			"path":        c.Path(),
			"method":      c.Method(),
			"request_id":  RequestID(c),
		})

		if code >= fiber.StatusInternalServerError {
			return utils.ErrorResponse(c, code, "An error occurred", nil)
		}
		return utils.ErrorResponse(c, code, fe.Message, nil)
	}
}

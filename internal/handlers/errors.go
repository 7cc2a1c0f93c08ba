package handlers

import (
	"errors"

	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError translates the error taxonomy to HTTP statuses. Unknown errors
// become a generic 500 with the detail kept server-side.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		body := fiber.Map{"message": validationErr.Message}
		if len(validationErr.Fields) > 0 {
			body["fields"] = validationErr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": authErr.Message})
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": notFoundErr.Error()})
	}

	log.Er("internal error", err)
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"message": "Internal server error"})
}

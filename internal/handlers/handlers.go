package handlers

import (
	"kintai/internal/apperrors"
	"kintai/internal/handlers/middleware"
	"kintai/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

var validate = validator.New()

// respondError maps a controller error onto the wire taxonomy. Unclassified
// errors are logged in full but surfaced with a generic message.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeInternal || code == apperrors.CodeStorage {
		log.Er("request failed", err, "path", c.Path())
	}

	return c.Status(apperrors.HTTPStatus(code)).JSON(fiber.Map{
		"error": apperrors.MessageOf(err),
		"code":  code,
	})
}

func respondValidationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
		"code":  apperrors.CodeValidation,
	})
}

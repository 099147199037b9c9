package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resumai/internal/repositories"
	"alfredoptarigan/resumai/internal/services"
)

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, repositories.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidTemplate),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrEmptyDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnsupportedFile):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrGenerationFailed),
		errors.Is(err, services.ErrEmptyCompletion):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()

	if code == fiber.StatusInternalServerError {
		log.Errorf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// ErrorHandler is the app-wide fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return errorResponse(c, err)
}

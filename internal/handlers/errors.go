package handlers

import (
	"errors"

	"gameshelf/internal/confirm"
	"gameshelf/internal/export"
	"gameshelf/internal/navigation"
	"gameshelf/internal/validation"

	"gameshelf/internal/handlers/middleware"

	gamesController "gameshelf/internal/controllers/games"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalidForm):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, gamesController.ErrRecordNotFound),
		errors.Is(err, gamesController.ErrUnknownCollection),
		errors.Is(err, confirm.ErrPromptNotFound),
		errors.Is(err, export.ErrNothingToExport):
		return fiber.StatusNotFound
	case errors.Is(err, navigation.ErrUnknownTab),
		errors.Is(err, navigation.ErrUnknownAction),
		errors.Is(err, navigation.ErrNoOpenForm):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// respondError replies with the error text for known failures. Anything else
// is logged and answered with fallback plus the trace id to look it up by.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := statusFor(err)
	if status != fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logger.New("handlers").
		TraceFromContext(c.UserContext()).
		Function("respondError").
		Er(fallback, err, "path", c.Path())

	return c.Status(status).JSON(fiber.Map{
		"error":   fallback,
		"traceId": middleware.GetTraceID(c),
	})
}

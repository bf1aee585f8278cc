package handlers

import (
	"log/slog"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError writes err as a JSON error body. Server-side failures are
// logged and reported, and their details are never sent to the client.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	message := apperr.MessageOf(err)

	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("request_id", requestID(c))
				hub.CaptureException(err)
			})
		}
		if status == fiber.StatusInternalServerError || message == "" {
			message = "Internal server error"
		}
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

// pathID parses a UUID route parameter. Malformed ids can never match a
// row, so they are reported as missing.
func pathID(c *fiber.Ctx, param, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperr.NotFound(notFound)
	}
	return id, nil
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
)

// respondAppError writes the envelope for a pipeline error, using the
// error's own status mapping. Server-side faults get logged here so every
// 500 leaves a trace; client-input conditions do not.
func respondAppError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*models.AppError)
	if !ok {
		appErr = models.NewInternalError(err)
	}

	status := appErr.HTTPStatus()
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request pipeline fault",
			"path", c.Path(),
			"code", appErr.Code,
			"error", appErr.Err,
		)
	}
	return models.RespondError(c, status, appErr)
}

// parsePayload decodes the request body into an untyped map so schema
// validation can report unknown-type and missing-field violations itself
// instead of failing at decode time.
func parsePayload(c *fiber.Ctx) (map[string]any, error) {
	payload := make(map[string]any)
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, models.NewValidationError(map[string][]string{
			"_body": {"Invalid JSON payload."},
		})
	}
	return payload, nil
}

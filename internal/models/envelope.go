package models

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response shape: {"data": ..., "error": ...}.
// Exactly one of Data and Error is non-null.
type Envelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody is the JSON form of an application error.
type ErrorBody struct {
	Code       string              `json:"code"`
	Message    string              `json:"message,omitempty"`
	Details    map[string][]string `json:"details,omitempty"`
	RetryAfter int                 `json:"retry_after,omitempty"`
}

// Respond writes a success envelope with the given status.
func Respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{Data: data})
}

// RespondError writes an error envelope. AppError carries its own code and
// detail; any other error is masked as INTERNAL_SERVER_ERROR so internal
// messages never reach the client.
func RespondError(c *fiber.Ctx, status int, err error) error {
	body := &ErrorBody{Code: CodeInternal, Message: "Internal server error"}

	if appErr, ok := err.(*AppError); ok {
		body = &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
		if appErr.RetryAfter > 0 {
			body.RetryAfter = int(math.Ceil(appErr.RetryAfter.Seconds()))
		}
	}

	return c.Status(status).JSON(Envelope{Error: body})
}

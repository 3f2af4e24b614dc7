package models

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in the response envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeCaptchaRequired    = "CAPTCHA_REQUIRED"
	CodeCaptchaFailed      = "CAPTCHA_FAILED"
	CodeEmptyAfterSanitize = "EMPTY_AFTER_SANITIZE"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeDB                 = "DB_ERROR"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code       string
	Message    string
	Details    map[string][]string
	RetryAfter time.Duration
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to the HTTP status the client receives.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeCaptchaRequired, CodeCaptchaFailed, CodeEmptyAfterSanitize:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// Predefined error constructors
func NewValidationError(details map[string][]string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "Validation failed.",
		Details: details,
	}
}

func NewCaptchaRequiredError() *AppError {
	return &AppError{
		Code:    CodeCaptchaRequired,
		Message: "Captcha token is required.",
	}
}

func NewCaptchaFailedError() *AppError {
	return &AppError{
		Code:    CodeCaptchaFailed,
		Message: "Captcha verification failed.",
	}
}

func NewEmptyAfterSanitizeError(message string) *AppError {
	return &AppError{
		Code:    CodeEmptyAfterSanitize,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

func NewRateLimitedError(retryAfter time.Duration) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "Too many requests. Please slow down.",
		RetryAfter: retryAfter,
	}
}

// NewDBError wraps a persistence failure. The wrapped cause is logged
// server-side only; the client message stays generic.
func NewDBError(err error) *AppError {
	return &AppError{
		Code:    CodeDB,
		Message: "Failed to save message.",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

package server

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
)

// CreateContactMessage handles POST /api/contact
func (s *Server) CreateContactMessage(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return respondAppError(c, err)
	}

	msg, err := s.contactService.Submit(c.UserContext(), payload, middleware.ClientIP(c))
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, msg)
}

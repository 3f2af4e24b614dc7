package server

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
)

// CreateComment handles POST /api/projects/:slug/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return respondAppError(c, err)
	}

	comment, err := s.commentService.Create(c.UserContext(), c.Params("slug"), payload, middleware.ClientIP(c))
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, comment)
}

// GetComments handles GET /api/projects/:slug/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondAppError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return models.Respond(c, fiber.StatusOK, comments)
}

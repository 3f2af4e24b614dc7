package server

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/internal/models"
)

// GetProjects handles GET /api/projects, with an optional free-text filter
// in the `q` query parameter.
func (s *Server) GetProjects(c *fiber.Ctx) error {
	projects, err := s.projectService.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondAppError(c, err)
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	return models.Respond(c, fiber.StatusOK, projects)
}

// GetProject handles GET /api/projects/:slug
func (s *Server) GetProject(c *fiber.Ctx) error {
	project, err := s.projectService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, project)
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repository"
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
	commentRepo repository.CommentRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, commentRepo repository.CommentRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, commentRepo: commentRepo}
}

// List returns all projects, optionally filtered by a free-text query over
// the title and description fields.
func (s *ProjectService) List(ctx context.Context, query string) ([]*models.Project, error) {
	projects, err := s.projectRepo.List(ctx, query)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to list projects", "error", err)
		return nil, models.NewDBError(err)
	}
	return projects, nil
}

// GetBySlug returns the project with its comments attached, newest first.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	project, err := s.projectRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project")
		}
		middleware.Logger.ErrorContext(ctx, "failed to look up project", "slug", slug, "error", err)
		return nil, models.NewDBError(err)
	}

	comments, err := s.commentRepo.ListByProject(ctx, project.ID)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to list comments", "slug", slug, "error", err)
		return nil, models.NewDBError(err)
	}
	project.Comments = make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		project.Comments = append(project.Comments, *c)
	}
	return project, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/captcha"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/sanitize"
	"portfolio/internal/validation"
)

type CommentService struct {
	commentRepo     repository.CommentRepository
	projectRepo     repository.ProjectRepository
	verifier        captcha.Verifier
	captchaRequired bool
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	projectRepo repository.ProjectRepository,
	verifier captcha.Verifier,
	captchaRequired bool,
) *CommentService {
	return &CommentService{
		commentRepo:     commentRepo,
		projectRepo:     projectRepo,
		verifier:        verifier,
		captchaRequired: captchaRequired,
	}
}

// Create runs the comment pipeline against the project identified by slug.
// The existence check runs before validation so a bad slug always yields
// 404 regardless of payload quality.
func (s *CommentService) Create(ctx context.Context, slug string, payload map[string]any, clientIP string) (*models.Comment, error) {
	project, err := s.projectRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project")
		}
		middleware.Logger.ErrorContext(ctx, "failed to look up project", "slug", slug, "error", err)
		return nil, models.NewDBError(err)
	}

	values, violations := validation.Validate(payload, validation.CommentSchema)
	if violations != nil {
		return nil, models.NewValidationError(violations)
	}

	token := values["captcha_token"]
	if s.captchaRequired && token == "" {
		return nil, models.NewCaptchaRequiredError()
	}
	if s.captchaRequired || token != "" {
		if !s.verifier.Verify(ctx, token, clientIP) {
			return nil, models.NewCaptchaFailedError()
		}
	}

	name := sanitize.Text(values["name"])
	content := sanitize.Text(values["content"])
	email := strings.TrimSpace(values["email"])

	if name == "" || content == "" {
		return nil, models.NewEmptyAfterSanitizeError("Comment content is empty after sanitization.")
	}

	comment := &models.Comment{
		ProjectID: project.ID,
		Name:      name,
		Email:     email,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to persist comment", "slug", slug, "error", err)
		return nil, models.NewDBError(err)
	}

	return comment, nil
}

// ListBySlug returns the project's comments, newest first.
func (s *CommentService) ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error) {
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
	return comments, nil
}

// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"portfolio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository defines interface for project operations. The public API
// only reads projects; writes come from operator tooling.
type ProjectRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	List(ctx context.Context, query string) ([]*models.Project, error)
	Upsert(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, query string) ([]*models.Project, error) {
	tx := r.db.WithContext(ctx).Model(&models.Project{})

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			"lower(title) LIKE ? OR lower(short_description) LIKE ? OR lower(description_md) LIKE ?",
			like, like, like,
		)
	}

	var projects []*models.Project
	err := tx.Order("id desc").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Upsert(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "short_description", "description_md",
			"image_url_desktop", "image_url_mobile", "images_json",
			"repo_url", "live_url",
		}),
	}).Create(project).Error
}

// Delete removes a project and its comments in one transaction. The comment
// delete is explicit rather than relying on the DB-level cascade so the
// invariant holds on drivers that do not enforce foreign keys by default.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

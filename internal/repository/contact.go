package repository

import (
	"context"

	"portfolio/internal/models"

	"gorm.io/gorm"
)

// ContactRepository defines interface for contact message operations
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts the message in its own transaction; partial writes are
// never visible to readers.
func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(msg).Error
	})
}

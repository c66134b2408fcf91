package database

import (
	"context"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const contactEntity = "Contact message"

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

func (r *ContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *ContactRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *ContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	return findOne[models.ContactMessage](ctx, r.db, contactEntity, "id = ?", id)
}

// UpdateStatus marks a message read or unread. Contact messages have no
// updated_at column.
func (r *ContactRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.ContactMessage, error) {
	return updateByID[models.ContactMessage](ctx, r.db, contactEntity, id, map[string]any{"status": status}, false)
}

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.ContactMessage](ctx, r.db, contactEntity, id)
}

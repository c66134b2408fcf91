package database

import (
	"context"
	"strings"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const galleryEntity = "Gallery item"

type GalleryRepo struct {
	db *gorm.DB
}

func NewGalleryRepo(db *gorm.DB) *GalleryRepo {
	return &GalleryRepo{db}
}

func (r *GalleryRepo) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// List returns items newest first, optionally limited to one category.
// "all" and the empty string both mean every category.
func (r *GalleryRepo) List(ctx context.Context, category string) ([]models.GalleryItem, error) {
	items := []models.GalleryItem{}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if category != "" && !strings.EqualFold(category, "all") {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&items).Error
	return items, err
}

func (r *GalleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.GalleryItem](ctx, r.db, galleryEntity, id)
}

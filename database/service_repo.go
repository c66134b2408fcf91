package database

import (
	"context"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceEntity = "Service"

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

func (r *ServiceRepo) Create(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// List returns services in display order, then by title.
func (r *ServiceRepo) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	query := r.db.WithContext(ctx).Order("display_order ASC").Order("title ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&services).Error
	return services, err
}

func (r *ServiceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&n).Error
	return n, err
}

func (r *ServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return findOne[models.Service](ctx, r.db, serviceEntity, "id = ?", id)
}

func (r *ServiceRepo) Update(ctx context.Context, id uuid.UUID, columns map[string]any) (*models.Service, error) {
	return updateByID[models.Service](ctx, r.db, serviceEntity, id, columns, true)
}

func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Service](ctx, r.db, serviceEntity, id)
}

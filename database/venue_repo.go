package database

import (
	"context"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const venueEntity = "Venue"

type VenueRepo struct {
	db *gorm.DB
}

func NewVenueRepo(db *gorm.DB) *VenueRepo {
	return &VenueRepo{db}
}

func (r *VenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

// List searches available venues, best rated first. Filters combine with AND.
func (r *VenueRepo) List(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	venues := []models.Venue{}
	query := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("rating DESC").
		Order("created_at DESC")

	if filter.City != "" {
		query = query.Where("LOWER(city) LIKE LOWER(?)", "%"+filter.City+"%")
	}
	if filter.HasCapacity() {
		query = query.Where("capacity BETWEEN ? AND ?", filter.MinCapacity, filter.MaxCapacity)
	}
	if filter.EventType != "" {
		query = query.Where("LOWER(CAST(suitable_for AS TEXT)) LIKE LOWER(?)", "%"+filter.EventType+"%")
	}

	err := query.Find(&venues).Error
	return venues, err
}

func (r *VenueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	return findOne[models.Venue](ctx, r.db, venueEntity, "id = ?", id)
}

func (r *VenueRepo) Update(ctx context.Context, id uuid.UUID, columns map[string]any) (*models.Venue, error) {
	return updateByID[models.Venue](ctx, r.db, venueEntity, id, columns, true)
}

func (r *VenueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Venue](ctx, r.db, venueEntity, id)
}

package database

import (
	"context"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const quoteEntity = "Quote request"

type QuoteRepo struct {
	db *gorm.DB
}

func NewQuoteRepo(db *gorm.DB) *QuoteRepo {
	return &QuoteRepo{db}
}

// Create inserts a quote request, filling its id and timestamps.
func (r *QuoteRepo) Create(ctx context.Context, quote *models.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// List returns every quote request, newest first.
func (r *QuoteRepo) List(ctx context.Context) ([]models.QuoteRequest, error) {
	quotes := []models.QuoteRequest{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return findOne[models.QuoteRequest](ctx, r.db, quoteEntity, "id = ?", id)
}

// UpdateStatus moves a quote through its workflow. columns holds status and,
// optionally, estimated_cost.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, columns map[string]any) (*models.QuoteRequest, error) {
	return updateByID[models.QuoteRequest](ctx, r.db, quoteEntity, id, columns, true)
}

package database

import (
	"context"
	"errors"

	"github.com/eventpilot/backend/errs"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findOne loads a single row matching query or reports entity as not found.
func findOne[T any](ctx context.Context, db *gorm.DB, entity string, query string, args ...any) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound(entity)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// updateByID applies columns to one row and returns it as stored, using a
// single UPDATE ... RETURNING statement. updated_at is always refreshed when
// the model has one.
func updateByID[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID, columns map[string]any, touch bool) (*T, error) {
	assignments := make(map[string]any, len(columns)+1)
	for k, v := range columns {
		assignments[k] = v
	}
	if touch {
		assignments["updated_at"] = db.NowFunc()
	}

	var out T
	res := db.WithContext(ctx).
		Model(&out).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(assignments)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFound(entity)
	}
	return &out, nil
}

// deleteByID hard deletes one row. A missing row is a not found error.
func deleteByID[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID) error {
	var model T
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound(entity)
	}
	return nil
}

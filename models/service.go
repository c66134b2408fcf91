package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is an offering shown on the marketing site, ordered by DisplayOrder.
type Service struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title        string                      `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Features     datatypes.JSONSlice[string] `json:"features" db:"features" gorm:"not null"`
	Color        string                      `json:"color" db:"color" gorm:"type:varchar(50);not null;default:primary"`
	Icon         string                      `json:"icon" db:"icon" gorm:"type:varchar(50);not null;default:Calendar"`
	ImageURL     *string                     `json:"imageUrl" db:"image_url" gorm:"type:text"`
	Active       bool                        `json:"active" db:"active" gorm:"not null"`
	DisplayOrder int                         `json:"displayOrder" db:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	if s.Features == nil {
		s.Features = datatypes.JSONSlice[string]{}
	}
	if s.Color == "" {
		s.Color = "primary"
	}
	if s.Icon == "" {
		s.Icon = "Calendar"
	}
	return nil
}

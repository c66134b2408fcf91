package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Venue struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name        string                      `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Description *string                     `json:"description" db:"description" gorm:"type:text"`
	Address     string                      `json:"address" db:"address" gorm:"type:text;not null"`
	City        string                      `json:"city" db:"city" gorm:"type:varchar(100);not null;index"`
	State       string                      `json:"state" db:"state" gorm:"type:varchar(50);not null"`
	ZipCode     string                      `json:"zipCode" db:"zip_code" gorm:"type:varchar(20);not null"`
	Capacity    int                         `json:"capacity" db:"capacity" gorm:"not null"`
	PricePerDay Money                       `json:"pricePerDay" db:"price_per_day" gorm:"type:numeric(10,2);not null"`
	SuitableFor datatypes.JSONSlice[string] `json:"suitableFor" db:"suitable_for"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities" db:"amenities"`
	Images      datatypes.JSONSlice[string] `json:"images" db:"images"`
	Rating      float64                     `json:"rating" db:"rating" gorm:"type:numeric(2,1);not null;default:0"`
	ReviewCount int                         `json:"reviewCount" db:"review_count" gorm:"not null;default:0"`
	Available   bool                        `json:"available" db:"available" gorm:"not null"`
	CreatedAt   time.Time                   `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (v *Venue) BeforeCreate(*gorm.DB) error {
	assignID(&v.ID)
	return nil
}

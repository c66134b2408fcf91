package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryItem struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Description *string   `json:"description" db:"description" gorm:"type:text"`
	ImageURL    string    `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	Category    string    `json:"category" db:"category" gorm:"type:varchar(100);not null;index"`
	EventType   *string   `json:"eventType" db:"event_type" gorm:"type:varchar(100)"`
	Featured    bool      `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

func (g *GalleryItem) BeforeCreate(*gorm.DB) error {
	assignID(&g.ID)
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost is an article addressed publicly by its slug. Content is HTML.
type BlogPost struct {
	ID            uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title         string                      `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Slug          string                      `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Excerpt       string                      `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	Content       string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Category      string                      `json:"category" db:"category" gorm:"type:varchar(100);not null"`
	Tags          datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	FeaturedImage *string                     `json:"featuredImage" db:"featured_image" gorm:"type:text"`
	Published     bool                        `json:"published" db:"published" gorm:"not null;default:false;index"`
	PublishedAt   *time.Time                  `json:"publishedAt" db:"published_at"`
	CreatedAt     time.Time                   `json:"createdAt" db:"created_at" gorm:"not null;index"`
	UpdatedAt     time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	if b.Published && b.PublishedAt == nil {
		now := tx.NowFunc()
		b.PublishedAt = &now
	}
	return nil
}

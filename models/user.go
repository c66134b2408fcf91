package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account record. The admin console itself authenticates against
// configured credentials; rows here exist for ownership of quote requests.
type User struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Email           *string   `json:"email" db:"email" gorm:"type:varchar(255);uniqueIndex"`
	FirstName       *string   `json:"firstName" db:"first_name" gorm:"type:varchar(255)"`
	LastName        *string   `json:"lastName" db:"last_name" gorm:"type:varchar(255)"`
	ProfileImageURL *string   `json:"profileImageUrl" db:"profile_image_url" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactStatusUnread ContactStatus = "unread"
	ContactStatusRead   ContactStatus = "read"
)

var ContactStatuses = []ContactStatus{ContactStatusUnread, ContactStatusRead}

type ContactMessage struct {
	ID        uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	FirstName string        `json:"firstName" db:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string        `json:"lastName" db:"last_name" gorm:"type:varchar(100);not null"`
	Email     string        `json:"email" db:"email" gorm:"type:varchar(255);not null"`
	Phone     *string       `json:"phone" db:"phone" gorm:"type:varchar(50)"`
	Subject   string        `json:"subject" db:"subject" gorm:"type:varchar(255);not null"`
	Message   string        `json:"message" db:"message" gorm:"type:text;not null"`
	Status    ContactStatus `json:"status" db:"status" gorm:"type:varchar(20);not null;default:unread;index"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

func (c *ContactMessage) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	if c.Status == "" {
		c.Status = ContactStatusUnread
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusReviewing QuoteStatus = "reviewing"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusCompleted QuoteStatus = "completed"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

var QuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusReviewing,
	QuoteStatusQuoted,
	QuoteStatusAccepted,
	QuoteStatusCompleted,
	QuoteStatusCancelled,
}

// QuoteServices holds the requested service flags of a quote.
type QuoteServices struct {
	Planning   bool `json:"planning"`
	Decoration bool `json:"decoration"`
	Rentals    bool `json:"rentals"`
	Lighting   bool `json:"lighting"`
	Staging    bool `json:"staging"`
	Academic   bool `json:"academic"`
}

type QuoteRequest struct {
	ID            uuid.UUID                          `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	UserID        *uuid.UUID                         `json:"userId" db:"user_id" gorm:"type:uuid;index"`
	User          *User                              `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	EventType     string                             `json:"eventType" db:"event_type" gorm:"type:varchar(100);not null"`
	GuestCount    string                             `json:"guestCount" db:"guest_count" gorm:"type:varchar(50);not null"`
	EventDate     time.Time                          `json:"eventDate" db:"event_date" gorm:"not null"`
	Budget        string                             `json:"budget" db:"budget" gorm:"type:varchar(50);not null"`
	Venue         *string                            `json:"venue" db:"venue" gorm:"type:text"`
	Services      datatypes.JSONType[QuoteServices] `json:"services" db:"services" gorm:"not null"`
	Name          string                             `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Email         string                             `json:"email" db:"email" gorm:"type:varchar(255);not null"`
	Phone         string                             `json:"phone" db:"phone" gorm:"type:varchar(50);not null"`
	ContactMethod string                             `json:"contactMethod" db:"contact_method" gorm:"type:varchar(20);not null;default:email"`
	Details       *string                            `json:"details" db:"details" gorm:"type:text"`
	Status        QuoteStatus                        `json:"status" db:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	EstimatedCost *Money                             `json:"estimatedCost" db:"estimated_cost" gorm:"type:numeric(10,2)"`
	CreatedAt     time.Time                          `json:"createdAt" db:"created_at" gorm:"not null;index"`
	UpdatedAt     time.Time                          `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (q *QuoteRequest) BeforeCreate(*gorm.DB) error {
	assignID(&q.ID)
	if q.Status == "" {
		q.Status = QuoteStatusPending
	}
	if q.ContactMethod == "" {
		q.ContactMethod = "email"
	}
	return nil
}

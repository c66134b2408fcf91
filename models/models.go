package models

import (
	"github.com/google/uuid"
)

// assignID gives a record a fresh identifier unless one is already set.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&QuoteRequest{},
		&ContactMessage{},
		&BlogPost{},
		&GalleryItem{},
		&Venue{},
		&Service{},
		&Session{},
	}
}

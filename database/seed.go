package database

import (
	"context"
	"fmt"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUserID is stable per username so repeated seeding updates one row.
func AdminUserID(username string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("eventpilot:admin:"+username))
}

// DefaultServices is the starter catalogue shown on a fresh install.
func DefaultServices() []models.Service {
	return []models.Service{
		{
			Title:        "Event Planning",
			Description:  "End to end coordination from the first call to the last guest leaving.",
			Features:     []string{"Timeline and budget management", "Vendor coordination", "Day-of coordination"},
			Icon:         "Calendar",
			Color:        "primary",
			Active:       true,
			DisplayOrder: 1,
		},
		{
			Title:        "Decoration & Design",
			Description:  "Themes, florals and styling tailored to the occasion.",
			Features:     []string{"Theme development", "Floral arrangements", "Table styling"},
			Icon:         "Palette",
			Color:        "secondary",
			Active:       true,
			DisplayOrder: 2,
		},
		{
			Title:        "Equipment Rentals",
			Description:  "Furniture, linens, tents and tableware delivered and collected.",
			Features:     []string{"Tables and seating", "Tents and canopies", "Linens and tableware"},
			Icon:         "Package",
			Color:        "accent",
			Active:       true,
			DisplayOrder: 3,
		},
		{
			Title:        "Lighting & Staging",
			Description:  "Stages, sound and lighting for ceremonies, galas and performances.",
			Features:     []string{"Stage construction", "Ambient and accent lighting", "Sound systems"},
			Icon:         "Lightbulb",
			Color:        "primary",
			Active:       true,
			DisplayOrder: 4,
		},
		{
			Title:        "Academic Events",
			Description:  "Graduations, conferences and award ceremonies run to schedule.",
			Features:     []string{"Commencement ceremonies", "Conference logistics", "Award nights"},
			Icon:         "GraduationCap",
			Color:        "secondary",
			Active:       true,
			DisplayOrder: 5,
		},
	}
}

// SeedResult reports what Seed changed.
type SeedResult struct {
	AdminUserID     uuid.UUID
	ServicesCreated int
}

// Seed upserts the admin user row and, when the catalogue is empty, inserts
// services. Both happen in one transaction.
func (d Database) Seed(ctx context.Context, admin models.User, services []models.Service) (SeedResult, error) {
	var result SeedResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewUserRepo(tx).Upsert(ctx, &admin); err != nil {
			return fmt.Errorf("upsert admin user: %w", err)
		}
		result.AdminUserID = admin.ID

		serviceRepo := NewServiceRepo(tx)
		count, err := serviceRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count services: %w", err)
		}
		if count > 0 {
			return nil
		}

		for i := range services {
			if err := serviceRepo.Create(ctx, &services[i]); err != nil {
				return fmt.Errorf("create service %q: %w", services[i].Title, err)
			}
			result.ServicesCreated++
		}
		return nil
	})
	return result, err
}

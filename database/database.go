package database

import (
	"github.com/eventpilot/backend/models"
	"gorm.io/gorm"
)

// Database is the storage gateway. Handlers reach tables only through its repos.
type Database struct {
	db           *gorm.DB
	userRepo     *UserRepo
	quoteRepo    *QuoteRepo
	contactRepo  *ContactRepo
	blogPostRepo *BlogPostRepo
	galleryRepo  *GalleryRepo
	venueRepo    *VenueRepo
	serviceRepo  *ServiceRepo
	sessionRepo  *SessionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		userRepo:     NewUserRepo(db),
		quoteRepo:    NewQuoteRepo(db),
		contactRepo:  NewContactRepo(db),
		blogPostRepo: NewBlogPostRepo(db),
		galleryRepo:  NewGalleryRepo(db),
		venueRepo:    NewVenueRepo(db),
		serviceRepo:  NewServiceRepo(db),
		sessionRepo:  NewSessionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) QuoteRepo() *QuoteRepo {
	return d.quoteRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) GalleryRepo() *GalleryRepo {
	return d.galleryRepo
}

func (d Database) VenueRepo() *VenueRepo {
	return d.venueRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

func modelsToMigrate() []any {
	return models.All()
}

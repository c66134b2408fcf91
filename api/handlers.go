package api

import (
	"github.com/eventpilot/backend/assets"
	"github.com/eventpilot/backend/auth"
	"github.com/eventpilot/backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, authenticator *auth.Authenticator, uploader assets.Uploader, maxUploadBytes int64) *routeHandlers {
	return &routeHandlers{
		quoteHandler:   newQuoteHandler(database.QuoteRepo()),
		contactHandler: newContactHandler(database.ContactRepo()),
		blogHandler:    newBlogPostHandler(database.BlogPostRepo()),
		galleryHandler: newGalleryHandler(database.GalleryRepo()),
		venueHandler:   newVenueHandler(database.VenueRepo()),
		serviceHandler: newServiceHandler(database.ServiceRepo()),
		adminHandler:   newAdminHandler(authenticator),
		uploadHandler:  newUploadHandler(uploader, maxUploadBytes),
	}
}

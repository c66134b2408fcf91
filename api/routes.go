package api

import (
	"net/http"

	"github.com/eventpilot/backend/metrics"
	"github.com/go-chi/chi/v5"
)

func setupSystemRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
}

// setupAPIRoutes mounts the public site endpoints and the admin console
// endpoints under /api.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/quotes", handlers.quoteHandler.createQuote())
			r.Post("/contact", handlers.contactHandler.createMessage())

			r.With(authMiddleware.identify).Get("/blog", handlers.blogHandler.getAllBlogPosts())
			r.Get("/blog/{slug}", handlers.blogHandler.getBlogPost())

			r.Get("/gallery", handlers.galleryHandler.getGallery())

			r.Get("/venues", handlers.venueHandler.searchVenues())
			r.Get("/venues/{id}", handlers.venueHandler.getVenue())

			r.Get("/services", handlers.serviceHandler.getServices())
			r.Get("/services/{id}", handlers.serviceHandler.getService())

			r.Post("/admin/login", handlers.adminHandler.login())
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Get("/quotes", handlers.quoteHandler.getAllQuotes())
			r.Get("/quotes/{id}", handlers.quoteHandler.getQuote())
			r.Patch("/quotes/{id}/status", handlers.quoteHandler.updateQuoteStatus())

			r.Get("/contact", handlers.contactHandler.getAllMessages())
			r.Patch("/contact/{id}/status", handlers.contactHandler.updateMessageStatus())
			r.Delete("/contact/{id}", handlers.contactHandler.deleteMessage())

			r.Post("/blog", handlers.blogHandler.createBlogPost())
			r.Put("/blog/{id}", handlers.blogHandler.updateBlogPost())
			r.Delete("/blog/{id}", handlers.blogHandler.deleteBlogPost())

			r.Post("/gallery", handlers.galleryHandler.createGalleryItem())
			r.Delete("/gallery/{id}", handlers.galleryHandler.deleteGalleryItem())

			r.Post("/venues", handlers.venueHandler.createVenue())
			r.Put("/venues/{id}", handlers.venueHandler.updateVenue())
			r.Delete("/venues/{id}", handlers.venueHandler.deleteVenue())

			r.Post("/services", handlers.serviceHandler.createService())
			r.Put("/services/{id}", handlers.serviceHandler.updateService())
			r.Delete("/services/{id}", handlers.serviceHandler.deleteService())

			r.Post("/admin/logout", handlers.adminHandler.logout())
			r.Get("/admin/user", handlers.adminHandler.currentUser())

			r.Post("/upload", handlers.uploadHandler.uploadImage())
		})
	})
}

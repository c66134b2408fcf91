package api

import (
	"net/http"

	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type galleryHandler struct {
	responder   Responder
	logger      zerolog.Logger
	galleryRepo *database.GalleryRepo
}

func newGalleryHandler(galleryRepo *database.GalleryRepo) galleryHandler {
	logger := log.With().Str("handlerName", "galleryHandler").Logger()

	return galleryHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		galleryRepo: galleryRepo,
	}
}

// getGallery lists items, optionally narrowed with ?category=
func (h galleryHandler) getGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.galleryRepo.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "gallery items", err))
			return
		}
		h.responder.WriteJSON(w, items)
	}
}

func (h galleryHandler) createGalleryItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := schema.ParseGalleryItem(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.galleryRepo.Create(r.Context(), &item); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Gallery item", err))
			return
		}
		h.responder.WriteJSON(w, item)
	}
}

func (h galleryHandler) deleteGalleryItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Gallery item")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.galleryRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Gallery item", err))
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Gallery item deleted successfully"})
	}
}

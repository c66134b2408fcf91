package api

import (
	"net/http"

	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type venueHandler struct {
	responder Responder
	logger    zerolog.Logger
	venueRepo *database.VenueRepo
}

func newVenueHandler(venueRepo *database.VenueRepo) venueHandler {
	logger := log.With().Str("handlerName", "venueHandler").Logger()

	return venueHandler{
		responder: NewResponder(logger),
		logger:    logger,
		venueRepo: venueRepo,
	}
}

// searchVenues returns available venues, best rated first
// @Summary Search venues
// @Tags Venues
// @Produce json
// @Param city query string false "Case insensitive substring of the city"
// @Param eventType query string false "Event type the venue must suit"
// @Param capacity query string false "Capacity bucket: 1-50, 51-100, 101-200, 201-500, 500+"
// @Success 200 {array} models.Venue "Matching venues"
// @Failure 400 {object} ValidationErrorResponse "Unknown capacity bucket"
// @Router /api/venues [get]
func (h venueHandler) searchVenues() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := schema.ParseVenueFilter(r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		venues, err := h.venueRepo.List(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "venues", err))
			return
		}
		h.responder.WriteJSON(w, venues)
	}
}

func (h venueHandler) getVenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Venue")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		venue, err := h.venueRepo.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Venue", err))
			return
		}
		h.responder.WriteJSON(w, venue)
	}
}

func (h venueHandler) createVenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		venue, err := schema.ParseVenue(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.venueRepo.Create(r.Context(), &venue); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Venue", err))
			return
		}
		h.responder.WriteJSON(w, venue)
	}
}

func (h venueHandler) updateVenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Venue")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		patch, err := schema.ParseVenuePatch(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		venue, err := h.venueRepo.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Venue", err))
			return
		}
		h.responder.WriteJSON(w, venue)
	}
}

func (h venueHandler) deleteVenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Venue")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.venueRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Venue", err))
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Venue deleted successfully"})
	}
}

package api

import (
	"net/http"

	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/metrics"
	"github.com/eventpilot/backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
}

func newContactHandler(contactRepo *database.ContactRepo) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
	}
}

func (h contactHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := schema.ParseContactMessage(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contactRepo.Create(r.Context(), &msg); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Contact message", err))
			return
		}

		metrics.RecordContactSubmission()
		h.logger.Info().Str("messageID", msg.ID.String()).Msg("contact message received")
		h.responder.WriteJSON(w, msg)
	}
}

func (h contactHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.contactRepo.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "contact messages", err))
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}

func (h contactHandler) updateMessageStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Contact message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status, err := schema.ParseContactStatusUpdate(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.contactRepo.UpdateStatus(r.Context(), id, status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Contact message", err))
			return
		}
		h.responder.WriteJSON(w, msg)
	}
}

func (h contactHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Contact message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contactRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Contact message", err))
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Contact message deleted successfully"})
	}
}

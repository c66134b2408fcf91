package api

import (
	"net/http"

	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/metrics"
	"github.com/eventpilot/backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type quoteHandler struct {
	responder Responder
	logger    zerolog.Logger
	quoteRepo *database.QuoteRepo
}

func newQuoteHandler(quoteRepo *database.QuoteRepo) quoteHandler {
	logger := log.With().Str("handlerName", "quoteHandler").Logger()

	return quoteHandler{
		responder: NewResponder(logger),
		logger:    logger,
		quoteRepo: quoteRepo,
	}
}

// createQuote stores a quote request from the public form
// @Summary Submit quote request
// @Tags Quotes
// @Accept json
// @Produce json
// @Success 200 {object} models.QuoteRequest "Stored quote request"
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Router /api/quotes [post]
func (h quoteHandler) createQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		quote, err := schema.ParseQuoteRequest(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.quoteRepo.Create(r.Context(), &quote); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Quote request", err))
			return
		}

		metrics.RecordQuoteRequest()
		h.logger.Info().Str("quoteID", quote.ID.String()).Str("eventType", quote.EventType).Msg("quote request received")
		h.responder.WriteJSON(w, quote)
	}
}

// getAllQuotes lists every quote request, newest first (admin only)
func (h quoteHandler) getAllQuotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotes, err := h.quoteRepo.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "quote requests", err))
			return
		}
		h.responder.WriteJSON(w, quotes)
	}
}

func (h quoteHandler) getQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Quote request")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		quote, err := h.quoteRepo.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Quote request", err))
			return
		}
		h.responder.WriteJSON(w, quote)
	}
}

// updateQuoteStatus moves a quote through its workflow and optionally records
// the estimate sent to the client.
// @Summary Update quote status
// @Tags Quotes
// @Param id path string true "Quote ID" format(uuid)
// @Success 200 {object} models.QuoteRequest "Updated quote request"
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 404 {object} MessageResponse "Quote request not found"
// @Router /api/quotes/{id}/status [patch]
func (h quoteHandler) updateQuoteStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Quote request")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		update, columns, err := schema.ParseQuoteStatusUpdate(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		quote, err := h.quoteRepo.UpdateStatus(r.Context(), id, columns)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Quote request", err))
			return
		}

		h.logger.Info().Str("quoteID", id.String()).Str("status", string(update.Status)).Msg("quote status updated")
		h.responder.WriteJSON(w, quote)
	}
}

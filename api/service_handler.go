package api

import (
	"net/http"

	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type serviceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	serviceRepo *database.ServiceRepo
}

func newServiceHandler(serviceRepo *database.ServiceRepo) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		serviceRepo: serviceRepo,
	}
}

// getServices lists the service catalogue in display order. ?active=true
// hides retired entries.
func (h serviceHandler) getServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := false
		if flag := schema.ParseOptionalBool(r.URL.Query(), "active"); flag != nil {
			activeOnly = *flag
		}

		services, err := h.serviceRepo.List(r.Context(), activeOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "services", err))
			return
		}
		h.responder.WriteJSON(w, services)
	}
}

func (h serviceHandler) getService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Service")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		service, err := h.serviceRepo.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Service", err))
			return
		}
		h.responder.WriteJSON(w, service)
	}
}

func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		service, err := schema.ParseService(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.serviceRepo.Create(r.Context(), &service); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Service", err))
			return
		}
		h.responder.WriteJSON(w, service)
	}
}

func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Service")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		patch, err := schema.ParseServicePatch(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		service, err := h.serviceRepo.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Service", err))
			return
		}
		h.responder.WriteJSON(w, service)
	}
}

func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Service")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.serviceRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Service", err))
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Service deleted successfully"})
	}
}

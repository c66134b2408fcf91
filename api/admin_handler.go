package api

import (
	"net/http"

	"github.com/eventpilot/backend/auth"
	"github.com/eventpilot/backend/errs"
	"github.com/eventpilot/backend/metrics"
	"github.com/eventpilot/backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder     Responder
	logger        zerolog.Logger
	authenticator *auth.Authenticator
}

func newAdminHandler(authenticator *auth.Authenticator) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		authenticator: authenticator,
	}
}

// login exchanges the admin credentials for a bearer token and a session cookie
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} LoginResponse "Token and admin identity"
// @Failure 401 {object} MessageResponse "Invalid credentials"
// @Router /api/admin/login [post]
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		creds, err := schema.ParseLogin(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.authenticator.Login(r.Context(), creds.Username, creds.Password)
		if err != nil {
			if errs.IsInvalidCredentialsError(err) {
				metrics.RecordAuthAttempt(false)
			}
			h.responder.WriteError(w, err)
			return
		}
		metrics.RecordAuthAttempt(true)

		http.SetCookie(w, h.authenticator.SessionCookie(session))
		h.responder.WriteJSON(w, LoginResponse{
			Success: true,
			Token:   session.Token,
			User: AdminUser{
				Username: session.Identity.Username,
				Role:     session.Identity.Role,
			},
		})
	}
}

func (h adminHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := ctxGetIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		if err := h.authenticator.Logout(r.Context(), identity); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		http.SetCookie(w, h.authenticator.ClearCookie())
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

// currentUser reports who the session belongs to
func (h adminHandler) currentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := ctxGetIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		h.responder.WriteJSON(w, AdminUser{Username: identity.Username, Role: identity.Role})
	}
}

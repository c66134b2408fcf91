package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventpilot/backend/errs"
	"github.com/rs/zerolog"
)

// databaseRetryAfter is the Retry-After value, in seconds, sent while the
// database cannot be reached.
const databaseRetryAfter = "5"

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data with status 200.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	// Marshal the data first so a failure can still become a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteMessage writes {"message": msg} with the given status.
func (r Responder) WriteMessage(w http.ResponseWriter, status int, msg string) {
	r.writeJSON(w, status, MessageResponse{Message: msg})
}

// WriteError maps err onto a status and a client safe body. Anything that is
// not an *errs.ApiErr is an unexpected failure and is logged in full.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("error", apiErr.GetFullError()).
			Bool("databaseUnreachable", errs.IsDatabaseConnectionError(apiErr)).
			Msg("request failed")
	}
	if errs.IsDatabaseConnectionError(apiErr) {
		w.Header().Set("Retry-After", databaseRetryAfter)
	}

	if errs.IsValidationError(apiErr) {
		issues := apiErr.Issues
		if issues == nil {
			issues = []errs.FieldIssue{}
		}
		r.writeJSON(w, apiErr.StatusCode, ValidationErrorResponse{
			Message: apiErr.Message(),
			Errors:  issues,
		})
		return
	}

	r.WriteMessage(w, apiErr.StatusCode, apiErr.Message())
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventpilot/backend/errs"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxJSONBody = 1 << 20

// decodeObject reads a JSON object body keeping numbers exact so the schema
// layer can tell integers from decimals.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return nil, errs.NewInvalidJSONError(err)
	}
	if raw == nil {
		return nil, errs.NewInvalidJSONError(errors.New("body is null"))
	}
	return raw, nil
}

// idParam parses the {id} route parameter. A malformed id can never match a
// row, so it is reported as not found.
func idParam(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity)
	}
	return id, nil
}

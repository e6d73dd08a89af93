package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// errorBody is the error envelope used by the API, matching the Django
// backend's shape: {"errors": "..."}.
type errorBody struct {
	Errors string `json:"errors"`
}

// fieldErrors maps field names to validation messages, the 400 shape for
// payload validation failures.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Errors: msg})
}

func writeFieldErrors(w http.ResponseWriter, errs fieldErrors) {
	writeJSON(w, http.StatusBadRequest, errs)
}

// writeStoreError maps storage sentinel errors onto HTTP statuses; anything
// unrecognised becomes a 500 and is logged by the caller's middleware.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, model.ErrNotRelated):
		writeError(w, http.StatusBadRequest, "relation does not exist")
	case errors.Is(err, model.ErrSelfSubscribe):
		writeError(w, http.StatusBadRequest, "cannot subscribe to yourself")
	default:
		s.logger.Error("internal error", "error", err)
		s.metrics.RecordInternalError()
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown syntax with
// a uniform 400. Returns false when a response has been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

package api

import "net/http"

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"` // "ok" or "degraded"
	Users   int    `json:"users"`
	Recipes int    `json:"recipes"`
}

// handleHealth reports service health. Returns 503 when the database does
// not respond.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}

		if err := s.store.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		if n, err := s.store.CountUsers(r.Context()); err == nil {
			resp.Users = n
		}
		if n, err := s.store.CountRecipes(r.Context()); err == nil {
			resp.Recipes = n
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

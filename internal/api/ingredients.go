package api

import (
	"net/http"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// handleListIngredients returns ingredients filtered by ?name= prefix,
// unpaginated.
func (s *Server) handleListIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.store.Ingredients(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if items == nil {
			items = []model.Ingredient{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) handleIngredientDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		ing, err := s.store.IngredientByID(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ing)
	}
}

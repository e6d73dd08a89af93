package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// handleAddFavorite puts a recipe into the caller's favorites.
func (s *Server) handleAddFavorite() http.HandlerFunc {
	return s.addRelation("favorites", s.store.AddFavorite)
}

// handleRemoveFavorite removes a recipe from the caller's favorites.
func (s *Server) handleRemoveFavorite() http.HandlerFunc {
	return s.removeRelation("favorites", s.store.RemoveFavorite)
}

// handleAddToCart puts a recipe into the caller's shopping cart.
func (s *Server) handleAddToCart() http.HandlerFunc {
	return s.addRelation("shopping cart", s.store.AddToCart)
}

// handleRemoveFromCart removes a recipe from the caller's shopping cart.
func (s *Server) handleRemoveFromCart() http.HandlerFunc {
	return s.removeRelation("shopping cart", s.store.RemoveFromCart)
}

// addRelation implements the shared add contract of favorite and shopping
// cart endpoints: 404 for a missing recipe, 400 for a repeat, 201 with the
// short recipe shape on success.
func (s *Server) addRelation(what string, add func(ctx context.Context, userID, recipeID int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		recipe, err := s.store.RecipeByID(r.Context(), id, user.ID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		if err := add(r.Context(), user.ID, id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s.toShortRecipeJSON(recipe))
	}
}

// removeRelation implements the shared delete contract: 404 for a missing
// recipe, 400 when the relation is already absent, 204 on success.
func (s *Server) removeRelation(what string, remove func(ctx context.Context, userID, recipeID int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		recipe, err := s.store.RecipeByID(r.Context(), id, user.ID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		if err := remove(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, model.ErrNotRelated) {
				writeError(w, http.StatusBadRequest,
					fmt.Sprintf("recipe (%s) is not in your %s", recipe.Name, what))
				return
			}
			s.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDownloadShoppingCart renders the caller's aggregated shopping list
// as a plain-text attachment.
func (s *Server) handleDownloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}

		items, err := s.store.ShoppingList(r.Context(), user.ID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		var b strings.Builder
		b.WriteString("Shopping list\n\n")
		for _, item := range items {
			fmt.Fprintf(&b, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
		_, _ = w.Write([]byte(b.String()))
	}
}

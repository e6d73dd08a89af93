package api

import (
	"net/http"
	"time"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// adminStatusResponse is the JSON response for GET /admin/status.
type adminStatusResponse struct {
	Uptime      string `json:"uptime"`
	Users       int    `json:"users"`
	Recipes     int    `json:"recipes"`
	Ingredients int    `json:"ingredients"`
}

func (s *Server) handleAdminStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := adminStatusResponse{
			Uptime: time.Since(s.startedAt).Truncate(time.Second).String(),
		}
		if n, err := s.store.CountUsers(r.Context()); err == nil {
			resp.Users = n
		}
		if n, err := s.store.CountRecipes(r.Context()); err == nil {
			resp.Recipes = n
		}
		if n, err := s.store.CountIngredients(r.Context()); err == nil {
			resp.Ingredients = n
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// adminUserJSON includes moderation-relevant fields the public shape hides.
type adminUserJSON struct {
	userJSON
	IsStaff   bool   `json:"is_staff"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleAdminListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := s.parsePage(r)
		users, total, err := s.store.Users(r.Context(), page)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		results := make([]adminUserJSON, 0, len(users))
		for _, u := range users {
			results = append(results, adminUserJSON{
				userJSON:  toUserJSON(u),
				IsStaff:   u.IsStaff,
				CreatedAt: u.CreatedAt.Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, envelope(r, page, total, results))
	}
}

func (s *Server) handleAdminDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := s.store.DeleteUser(r.Context(), id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		s.logger.Info("admin deleted user", "user", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleAdminListRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := s.parsePage(r)
		recipes, total, err := s.store.Recipes(r.Context(), model.RecipeFilter{}, page, 0)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		results := make([]recipeJSON, 0, len(recipes))
		for _, rec := range recipes {
			results = append(results, s.toRecipeJSON(rec))
		}
		writeJSON(w, http.StatusOK, envelope(r, page, total, results))
	}
}

// handleAdminDeleteRecipe removes any recipe regardless of author.
func (s *Server) handleAdminDeleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		recipe, err := s.store.RecipeByID(r.Context(), id, 0)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if err := s.store.DeleteRecipe(r.Context(), id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		s.media.Remove(recipe.Image)
		s.logger.Info("admin deleted recipe", "recipe", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

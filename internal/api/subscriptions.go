package api

import (
	"net/http"
	"strconv"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// handleSubscriptions lists the authors the caller follows, each with their
// recipes (short form, capped by ?recipes_limit=) and a recipe count.
func (s *Server) handleSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}

		page := s.parsePage(r)
		authors, total, err := s.store.Subscriptions(r.Context(), user.ID, page)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		recipesLimit := 0
		if raw := r.URL.Query().Get("recipes_limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				recipesLimit = n
			}
		}

		results := make([]authorJSON, 0, len(authors))
		for _, author := range authors {
			aj, err := s.buildAuthorJSON(r, author, recipesLimit)
			if err != nil {
				s.writeStoreError(w, err)
				return
			}
			results = append(results, aj)
		}
		writeJSON(w, http.StatusOK, envelope(r, page, total, results))
	}
}

// handleSubscribe makes the caller follow an author.
func (s *Server) handleSubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		author, err := s.store.UserByID(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		if err := s.store.Subscribe(r.Context(), user.ID, author.ID); err != nil {
			s.writeStoreError(w, err)
			return
		}

		author.IsSubscribed = true
		aj, err := s.buildAuthorJSON(r, author, 0)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, aj)
	}
}

// handleUnsubscribe removes a subscription. A missing subscription is a 400
// with the errors envelope, matching the original API.
func (s *Server) handleUnsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if _, err := s.store.UserByID(r.Context(), id); err != nil {
			s.writeStoreError(w, err)
			return
		}

		if err := s.store.Unsubscribe(r.Context(), user.ID, id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// buildAuthorJSON assembles a subscription entry: author profile plus their
// recipes in short form.
func (s *Server) buildAuthorJSON(r *http.Request, author model.User, recipesLimit int) (authorJSON, error) {
	recipes, err := s.store.RecipesByAuthor(r.Context(), author.ID, recipesLimit)
	if err != nil {
		return authorJSON{}, err
	}
	count, err := s.store.CountRecipesByAuthor(r.Context(), author.ID)
	if err != nil {
		return authorJSON{}, err
	}

	short := make([]shortRecipeJSON, 0, len(recipes))
	for _, rec := range recipes {
		short = append(short, s.toShortRecipeJSON(rec))
	}

	return authorJSON{
		userJSON:     toUserJSON(author),
		Recipes:      short,
		RecipesCount: count,
	}, nil
}

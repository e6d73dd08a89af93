package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

const maxRecipeNameLength = 200

type recipeRequest struct {
	Ingredients []model.IngredientAmount `json:"ingredients"`
	Tags        []int64                  `json:"tags"`
	Image       string                   `json:"image"`
	Name        string                   `json:"name"`
	Text        string                   `json:"text"`
	CookingTime int                      `json:"cooking_time"`
}

// validate checks the payload. imageRequired is false for updates, where an
// omitted image keeps the stored one.
func (req recipeRequest) validate(imageRequired bool) fieldErrors {
	errs := fieldErrors{}

	if req.Name == "" || len(req.Name) > maxRecipeNameLength {
		errs.add("name", "required, at most 200 characters")
	}
	if req.Text == "" {
		errs.add("text", "required")
	}
	if req.CookingTime < 1 {
		errs.add("cooking_time", "must be at least 1")
	}
	if imageRequired && req.Image == "" {
		errs.add("image", "required")
	}

	if len(req.Ingredients) == 0 {
		errs.add("ingredients", "at least one ingredient is required")
	}
	seen := make(map[int64]bool, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Amount < 1 {
			errs.add("ingredients", "amount must be at least 1")
			break
		}
		if seen[ing.ID] {
			errs.add("ingredients", "duplicate ingredient")
			break
		}
		seen[ing.ID] = true
	}

	if len(req.Tags) == 0 {
		errs.add("tags", "at least one tag is required")
	}
	seenTags := make(map[int64]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTags[id] {
			errs.add("tags", "duplicate tag")
			break
		}
		seenTags[id] = true
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// parseRecipeFilter builds a RecipeFilter from query parameters. The
// favorited/cart filters only apply to authenticated callers, matching the
// original API where they silently no-op for anonymous users.
func parseRecipeFilter(r *http.Request) model.RecipeFilter {
	q := r.URL.Query()
	filter := model.RecipeFilter{TagSlugs: q["tags"]}

	if raw := q.Get("author"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.AuthorID = id
		}
	}
	if uid := viewerID(r); uid != 0 {
		if q.Get("is_favorited") == "1" {
			filter.FavoritedBy = uid
		}
		if q.Get("is_in_shopping_cart") == "1" {
			filter.InShoppingCartOf = uid
		}
	}
	return filter
}

// handleListRecipes returns a filtered, paginated recipe list.
func (s *Server) handleListRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := s.parsePage(r)
		recipes, total, err := s.store.Recipes(r.Context(), parseRecipeFilter(r), page, viewerID(r))
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

// handleRecipeDetail returns a single recipe.
func (s *Server) handleRecipeDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		recipe, err := s.store.RecipeByID(r.Context(), id, viewerID(r))
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.toRecipeJSON(recipe))
	}
}

// handleCreateRecipe publishes a new recipe for the authenticated user.
func (s *Server) handleCreateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}

		var req recipeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if errs := req.validate(true); errs != nil {
			writeFieldErrors(w, errs)
			return
		}

		image, err := s.media.SaveBase64(req.Image)
		if err != nil {
			writeFieldErrors(w, fieldErrors{"image": {"invalid image"}})
			return
		}

		recipe, err := s.store.CreateRecipe(r.Context(), model.Recipe{
			Author:      *user,
			Name:        req.Name,
			Image:       image,
			Text:        req.Text,
			CookingTime: req.CookingTime,
		}, req.Ingredients, req.Tags)
		if err != nil {
			s.media.Remove(image)
			if errors.Is(err, model.ErrNotFound) {
				// The recipe row itself was just created, so a missing row
				// here means an unknown ingredient or tag reference.
				writeError(w, http.StatusBadRequest, "unknown ingredient or tag")
				return
			}
			s.writeStoreError(w, err)
			return
		}

		s.logger.Info("recipe created", "recipe", recipe.ID, "author", user.Username)
		writeJSON(w, http.StatusCreated, s.toRecipeJSON(recipe))
	}
}

// handleUpdateRecipe replaces a recipe's content. Author only.
func (s *Server) handleUpdateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		existing, err := s.store.RecipeByID(r.Context(), id, user.ID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if existing.Author.ID != user.ID {
			writeError(w, http.StatusForbidden, "not the author of this recipe")
			return
		}

		var req recipeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if errs := req.validate(false); errs != nil {
			writeFieldErrors(w, errs)
			return
		}

		image := existing.Image
		var newImage string
		if req.Image != "" {
			newImage, err = s.media.SaveBase64(req.Image)
			if err != nil {
				writeFieldErrors(w, fieldErrors{"image": {"invalid image"}})
				return
			}
			image = newImage
		}

		recipe, err := s.store.UpdateRecipe(r.Context(), model.Recipe{
			ID:          id,
			Author:      *user,
			Name:        req.Name,
			Image:       image,
			Text:        req.Text,
			CookingTime: req.CookingTime,
		}, req.Ingredients, req.Tags)
		if err != nil {
			s.media.Remove(newImage)
			if errors.Is(err, model.ErrNotFound) {
				writeError(w, http.StatusBadRequest, "unknown ingredient or tag")
				return
			}
			s.writeStoreError(w, err)
			return
		}

		if newImage != "" && existing.Image != "" {
			s.media.Remove(existing.Image)
		}
		writeJSON(w, http.StatusOK, s.toRecipeJSON(recipe))
	}
}

// handleDeleteRecipe removes a recipe. Author only.
func (s *Server) handleDeleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		existing, err := s.store.RecipeByID(r.Context(), id, user.ID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if existing.Author.ID != user.ID {
			writeError(w, http.StatusForbidden, "not the author of this recipe")
			return
		}

		if err := s.store.DeleteRecipe(r.Context(), id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		s.media.Remove(existing.Image)
		w.WriteHeader(http.StatusNoContent)
	}
}

package api

import (
	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// userJSON is the wire representation of a user.
type userJSON struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func toUserJSON(u model.User) userJSON {
	return userJSON{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

// registeredJSON is the registration response. Unlike userJSON it carries
// no is_subscribed: a fresh account has no viewer relation to report.
type registeredJSON struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toRegisteredJSON(u model.User) registeredJSON {
	return registeredJSON{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// recipeJSON is the full wire representation of a recipe.
type recipeJSON struct {
	ID               int64                    `json:"id"`
	Tags             []model.Tag              `json:"tags"`
	Author           userJSON                 `json:"author"`
	Ingredients      []model.RecipeIngredient `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

func (s *Server) toRecipeJSON(r model.Recipe) recipeJSON {
	out := recipeJSON{
		ID:               r.ID,
		Tags:             r.Tags,
		Author:           toUserJSON(r.Author),
		Ingredients:      r.Ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            s.media.URL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if out.Tags == nil {
		out.Tags = []model.Tag{}
	}
	if out.Ingredients == nil {
		out.Ingredients = []model.RecipeIngredient{}
	}
	return out
}

// shortRecipeJSON is the compact recipe shape used by favorite, cart, and
// subscription responses.
type shortRecipeJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func (s *Server) toShortRecipeJSON(r model.Recipe) shortRecipeJSON {
	return shortRecipeJSON{
		ID:          r.ID,
		Name:        r.Name,
		Image:       s.media.URL(r.Image),
		CookingTime: r.CookingTime,
	}
}

// authorJSON is a user plus their recipes, used by subscription responses.
type authorJSON struct {
	userJSON
	Recipes      []shortRecipeJSON `json:"recipes"`
	RecipesCount int               `json:"recipes_count"`
}

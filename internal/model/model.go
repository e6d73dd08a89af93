// Package model defines the domain types shared by the storage layer and
// the HTTP API: users, tags, ingredients, recipes, and the relations
// between them.
package model

import "time"

// User is a registered account. PasswordHash is the bcrypt hash of the
// password and never leaves the backend.
type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time

	// IsSubscribed reports whether the requesting user follows this one.
	// Populated per request, not persisted.
	IsSubscribed bool
}

// Tag is a recipe label (e.g. "breakfast"). Color is a #RRGGBB hex value.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Ingredient is a dictionary entry. The (Name, MeasurementUnit) pair is
// unique.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredient is an ingredient with the amount used by a recipe.
type RecipeIngredient struct {
	Ingredient
	Amount int `json:"amount"`
}

// Recipe is a published recipe with its full relations loaded.
type Recipe struct {
	ID          int64
	Author      User
	Name        string
	Image       string // path under the media root
	Text        string
	CookingTime int
	PubDate     time.Time

	Tags        []Tag
	Ingredients []RecipeIngredient

	// Per-request flags for the authenticated caller.
	IsFavorited      bool
	IsInShoppingCart bool
}

// IngredientAmount pairs an ingredient ID with an amount, as submitted in
// recipe create/update payloads.
type IngredientAmount struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// ShoppingItem is one aggregated line of a shopping list: the total amount
// of an ingredient across every recipe in the user's cart.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// RecipeFilter narrows recipe listings. Zero values mean "no constraint".
type RecipeFilter struct {
	AuthorID         int64
	TagSlugs         []string
	FavoritedBy      int64 // user ID; only recipes favorited by this user
	InShoppingCartOf int64 // user ID; only recipes in this user's cart
}

// Page is a pagination window. Limit <= 0 means "use the default".
type Page struct {
	Number int
	Limit  int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

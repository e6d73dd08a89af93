package sqlite

import (
	"context"
	"fmt"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// AddFavorite marks a recipe as favorited by a user. Returns
// model.ErrDuplicate when it already is.
func (s *Store) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.addRelation(ctx, "favorites", userID, recipeID)
}

// RemoveFavorite removes a favorite. Returns model.ErrNotRelated when the
// recipe is not in the user's favorites.
func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.removeRelation(ctx, "favorites", userID, recipeID)
}

// AddToCart puts a recipe into a user's shopping cart.
func (s *Store) AddToCart(ctx context.Context, userID, recipeID int64) error {
	return s.addRelation(ctx, "shopping_cart", userID, recipeID)
}

// RemoveFromCart removes a recipe from a user's shopping cart.
func (s *Store) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return s.removeRelation(ctx, "shopping_cart", userID, recipeID)
}

func (s *Store) addRelation(ctx context.Context, table string, userID, recipeID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+table+" (user_id, recipe_id) VALUES (?, ?)",
		userID, recipeID,
	)
	if isUniqueViolation(err) {
		return model.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", table, err)
	}
	return nil
}

func (s *Store) removeRelation(ctx context.Context, table string, userID, recipeID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete %s rows affected: %w", table, err)
	}
	if n == 0 {
		return model.ErrNotRelated
	}
	return nil
}

// ShoppingList aggregates ingredient amounts across every recipe in the
// user's cart, grouped by ingredient, ordered by name.
func (s *Store) ShoppingList(ctx context.Context, userID int64) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, SUM(ri.amount)
		FROM shopping_cart c
		JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE c.user_id = ?
		GROUP BY i.id
		ORDER BY i.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: shopping list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ShoppingItem
	for rows.Next() {
		var item model.ShoppingItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, fmt.Errorf("sqlite: scan shopping item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: shopping list rows: %w", err)
	}
	return items, nil
}

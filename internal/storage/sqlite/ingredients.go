package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// Ingredients returns ingredients whose name starts with prefix
// (case-insensitive), ordered by name. An empty prefix returns everything.
func (s *Store) Ingredients(ctx context.Context, prefix string) ([]model.Ingredient, error) {
	query := "SELECT id, name, measurement_unit FROM ingredients"
	var args []any
	if prefix != "" {
		// Match against the lowercased shadow column. SQLite's LIKE only
		// case-folds ASCII, so the folding has to happen in Go for the
		// Cyrillic dictionary names.
		// Escape LIKE wildcards so the prefix is matched literally.
		escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(prefix))
		query += ` WHERE name_fold LIKE ? ESCAPE '\'`
		args = append(args, escaped+"%")
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("sqlite: scan ingredient: %w", err)
		}
		items = append(items, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list ingredients rows: %w", err)
	}
	return items, nil
}

// IngredientByID fetches a single ingredient.
func (s *Store) IngredientByID(ctx context.Context, id int64) (model.Ingredient, error) {
	var ing model.Ingredient
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, measurement_unit FROM ingredients WHERE id = ?", id,
	).Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ingredient{}, model.ErrNotFound
	}
	if err != nil {
		return model.Ingredient{}, fmt.Errorf("sqlite: ingredient by id: %w", err)
	}
	return ing, nil
}

// UpsertIngredient inserts an ingredient, ignoring exact duplicates.
// Used by fixture loading.
func (s *Store) UpsertIngredient(ctx context.Context, ing model.Ingredient) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (name, name_fold, measurement_unit) VALUES (?, ?, ?)
		ON CONFLICT(name, measurement_unit) DO NOTHING`,
		ing.Name, strings.ToLower(ing.Name), ing.MeasurementUnit,
	); err != nil {
		return fmt.Errorf("sqlite: upsert ingredient %q: %w", ing.Name, err)
	}
	return nil
}

// CountIngredients returns the size of the ingredient dictionary.
func (s *Store) CountIngredients(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count ingredients: %w", err)
	}
	return n, nil
}

// ingredientsByRecipe loads ingredient rows (with amounts) for a set of
// recipe IDs, keyed by recipe ID.
func (s *Store) ingredientsByRecipe(ctx context.Context, recipeIDs []int64) (map[int64][]model.RecipeIngredient, error) {
	if len(recipeIDs) == 0 {
		return map[int64][]model.RecipeIngredient{}, nil
	}

	query := `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (` + placeholders(len(recipeIDs)) + `)
		ORDER BY i.id`
	rows, err := s.db.QueryContext(ctx, query, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recipe ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]model.RecipeIngredient)
	for rows.Next() {
		var (
			recipeID int64
			ri       model.RecipeIngredient
		)
		if err := rows.Scan(&recipeID, &ri.ID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return nil, fmt.Errorf("sqlite: scan recipe ingredient: %w", err)
		}
		out[recipeID] = append(out[recipeID], ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: recipe ingredients rows: %w", err)
	}
	return out, nil
}

// placeholders returns "?, ?, ..." with n placeholders.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

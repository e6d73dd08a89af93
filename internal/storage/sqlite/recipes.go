package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// CreateRecipe inserts a recipe with its ingredient and tag relations in a
// single transaction. Unknown ingredient or tag IDs fail the transaction
// with an error wrapping model.ErrNotFound.
func (s *Store) CreateRecipe(ctx context.Context, r model.Recipe, ingredients []model.IngredientAmount, tagIDs []int64) (model.Recipe, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: begin create recipe: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (author_id, name, image, text, cooking_time)
		VALUES (?, ?, ?, ?, ?)`,
		r.Author.ID, r.Name, r.Image, r.Text, r.CookingTime,
	)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: insert recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: recipe id: %w", err)
	}

	if err := insertRelations(ctx, tx, id, ingredients, tagIDs); err != nil {
		return model.Recipe{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: commit create recipe: %w", err)
	}

	return s.RecipeByID(ctx, id, r.Author.ID)
}

// UpdateRecipe replaces a recipe's fields and relations in a transaction.
func (s *Store) UpdateRecipe(ctx context.Context, r model.Recipe, ingredients []model.IngredientAmount, tagIDs []int64) (model.Recipe, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: begin update recipe: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE recipes SET name = ?, image = ?, text = ?, cooking_time = ?
		WHERE id = ?`,
		r.Name, r.Image, r.Text, r.CookingTime, r.ID,
	)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: update recipe: %w", err)
	}
	if err := requireAffected(res, "update recipe"); err != nil {
		return model.Recipe{}, err
	}

	for _, table := range []string{"recipe_ingredients", "recipe_tags"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE recipe_id = ?", r.ID); err != nil {
			return model.Recipe{}, fmt.Errorf("sqlite: clear %s: %w", table, err)
		}
	}

	if err := insertRelations(ctx, tx, r.ID, ingredients, tagIDs); err != nil {
		return model.Recipe{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: commit update recipe: %w", err)
	}

	return s.RecipeByID(ctx, r.ID, r.Author.ID)
}

func insertRelations(ctx context.Context, tx *sql.Tx, recipeID int64, ingredients []model.IngredientAmount, tagIDs []int64) error {
	for _, ing := range ingredients {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, ?)",
			recipeID, ing.ID, ing.Amount,
		); err != nil {
			return fmt.Errorf("sqlite: link ingredient %d: %w", ing.ID, model.ErrNotFound)
		}
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)",
			recipeID, tagID,
		); err != nil {
			return fmt.Errorf("sqlite: link tag %d: %w", tagID, model.ErrNotFound)
		}
	}
	return nil
}

// DeleteRecipe removes a recipe; relations cascade.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: delete recipe: %w", err)
	}
	return requireAffected(res, "delete recipe")
}

// recipeSelect is the base projection for recipe reads. The two EXISTS
// columns compute the viewer's favorite/cart flags and each consumes a
// viewerID argument; viewerID 0 (anonymous) matches no rows so both come
// back false.
const recipeSelect = `
	SELECT r.id, r.author_id, r.name, r.image, r.text, r.cooking_time, r.pub_date,
		EXISTS(SELECT 1 FROM favorites f WHERE f.user_id = ? AND f.recipe_id = r.id),
		EXISTS(SELECT 1 FROM shopping_cart c WHERE c.user_id = ? AND c.recipe_id = r.id)
	FROM recipes r`

// RecipeByID fetches a recipe with relations and the viewer's flags.
// viewerID 0 means anonymous.
func (s *Store) RecipeByID(ctx context.Context, id, viewerID int64) (model.Recipe, error) {
	row := s.db.QueryRowContext(ctx, recipeSelect+" WHERE r.id = ?", viewerID, viewerID, id)
	r, err := scanRecipe(row)
	if err != nil {
		return model.Recipe{}, err
	}

	recipes := []*model.Recipe{&r}
	if err := s.loadRelations(ctx, recipes, viewerID); err != nil {
		return model.Recipe{}, err
	}
	return r, nil
}

// Recipes returns a filtered page of recipes ordered newest-first, plus the
// total count matching the filter.
func (s *Store) Recipes(ctx context.Context, filter model.RecipeFilter, page model.Page, viewerID int64) ([]model.Recipe, int, error) {
	where, args := buildRecipeWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes r"+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: count recipes: %w", err)
	}

	// Placeholder order follows statement order: the two viewer EXISTS
	// columns, then the WHERE args, then LIMIT/OFFSET.
	query := recipeSelect + where + " ORDER BY r.pub_date DESC, r.id DESC LIMIT ? OFFSET ?"
	full := append([]any{viewerID, viewerID}, args...)
	full = append(full, page.Limit, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, full...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: list recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recipes []*model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, err
		}
		recipes = append(recipes, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: list recipes rows: %w", err)
	}

	if err := s.loadRelations(ctx, recipes, viewerID); err != nil {
		return nil, 0, err
	}

	out := make([]model.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = *r
	}
	return out, total, nil
}

// buildRecipeWhere translates a RecipeFilter into a WHERE clause with
// ordinal placeholders and their arguments in statement order.
func buildRecipeWhere(filter model.RecipeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.AuthorID != 0 {
		conds = append(conds, "r.author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		conds = append(conds, `EXISTS(
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug IN (`+placeholders(len(filter.TagSlugs))+`))`)
		for _, slug := range filter.TagSlugs {
			args = append(args, slug)
		}
	}
	if filter.FavoritedBy != 0 {
		conds = append(conds, "EXISTS(SELECT 1 FROM favorites f2 WHERE f2.user_id = ? AND f2.recipe_id = r.id)")
		args = append(args, filter.FavoritedBy)
	}
	if filter.InShoppingCartOf != 0 {
		conds = append(conds, "EXISTS(SELECT 1 FROM shopping_cart c2 WHERE c2.user_id = ? AND c2.recipe_id = r.id)")
		args = append(args, filter.InShoppingCartOf)
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// RecipesByAuthor returns an author's recipes newest-first, capped at limit
// (0 = no cap). Used for subscription listings; relations are not loaded.
func (s *Store) RecipesByAuthor(ctx context.Context, authorID int64, limit int) ([]model.Recipe, error) {
	query := "SELECT id, name, image, cooking_time FROM recipes WHERE author_id = ? ORDER BY pub_date DESC, id DESC"
	args := []any{authorID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recipes by author: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recipes []model.Recipe
	for rows.Next() {
		var r model.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Image, &r.CookingTime); err != nil {
			return nil, fmt.Errorf("sqlite: scan author recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: recipes by author rows: %w", err)
	}
	return recipes, nil
}

// CountRecipesByAuthor returns how many recipes an author has published.
func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes WHERE author_id = ?", authorID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count author recipes: %w", err)
	}
	return n, nil
}

// CountRecipes returns the total number of recipes.
func (s *Store) CountRecipes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count recipes: %w", err)
	}
	return n, nil
}

func scanRecipe(row rowScanner) (model.Recipe, error) {
	var (
		r         model.Recipe
		pubDate   string
		favorited int
		inCart    int
	)
	err := row.Scan(&r.ID, &r.Author.ID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &pubDate, &favorited, &inCart)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Recipe{}, model.ErrNotFound
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("sqlite: scan recipe: %w", err)
	}
	r.PubDate = parseTime(pubDate)
	r.IsFavorited = favorited != 0
	r.IsInShoppingCart = inCart != 0
	return r, nil
}

// loadRelations fills tags, ingredients, and authors for the given recipes
// with batched queries.
func (s *Store) loadRelations(ctx context.Context, recipes []*model.Recipe, viewerID int64) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	authorSet := make(map[int64]struct{})
	for i, r := range recipes {
		ids[i] = r.ID
		authorSet[r.Author.ID] = struct{}{}
	}

	tags, err := s.tagsByRecipe(ctx, ids)
	if err != nil {
		return err
	}
	ingredients, err := s.ingredientsByRecipe(ctx, ids)
	if err != nil {
		return err
	}

	authorIDs := make([]int64, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}
	authors, err := s.usersByIDs(ctx, authorIDs)
	if err != nil {
		return err
	}
	subscribed, err := s.subscribedSet(ctx, viewerID, authorIDs)
	if err != nil {
		return err
	}

	for _, r := range recipes {
		r.Tags = tags[r.ID]
		r.Ingredients = ingredients[r.ID]
		if author, ok := authors[r.Author.ID]; ok {
			author.IsSubscribed = subscribed[author.ID]
			r.Author = author
		}
	}
	return nil
}

// usersByIDs fetches users keyed by ID.
func (s *Store) usersByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error) {
	if len(ids) == 0 {
		return map[int64]model.User{}, nil
	}

	query := "SELECT " + userColumns + " FROM users WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: users by ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64]model.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: users by ids rows: %w", err)
	}
	return out, nil
}

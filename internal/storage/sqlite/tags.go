package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// Tags returns all tags ordered by ID. The tag dictionary is small and
// never paginated.
func (s *Store) Tags(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, color, slug FROM tags ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("sqlite: list tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("sqlite: scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list tags rows: %w", err)
	}
	return tags, nil
}

// TagByID fetches a single tag.
func (s *Store) TagByID(ctx context.Context, id int64) (model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, color, slug FROM tags WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, model.ErrNotFound
	}
	if err != nil {
		return model.Tag{}, fmt.Errorf("sqlite: tag by id: %w", err)
	}
	return t, nil
}

// UpsertTag inserts a tag or updates name/color for an existing slug.
// Used by fixture loading.
func (s *Store) UpsertTag(ctx context.Context, t model.Tag) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (name, color, slug) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET name = excluded.name, color = excluded.color`,
		t.Name, t.Color, t.Slug,
	); err != nil {
		return fmt.Errorf("sqlite: upsert tag %q: %w", t.Slug, err)
	}
	return nil
}

// tagsByRecipe loads tags for a set of recipe IDs, keyed by recipe ID.
func (s *Store) tagsByRecipe(ctx context.Context, recipeIDs []int64) (map[int64][]model.Tag, error) {
	if len(recipeIDs) == 0 {
		return map[int64][]model.Tag{}, nil
	}

	query := `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (` + placeholders(len(recipeIDs)) + `)
		ORDER BY t.id`
	rows, err := s.db.QueryContext(ctx, query, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recipe tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]model.Tag)
	for rows.Next() {
		var (
			recipeID int64
			t        model.Tag
		)
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("sqlite: scan recipe tag: %w", err)
		}
		out[recipeID] = append(out[recipeID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: recipe tags rows: %w", err)
	}
	return out, nil
}

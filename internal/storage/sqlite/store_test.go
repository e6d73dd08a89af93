package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"), 5000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func seedUser(t *testing.T, s *Store, email, username string) model.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), model.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func seedIngredient(t *testing.T, s *Store, name, unit string) model.Ingredient {
	t.Helper()

	ctx := context.Background()
	if err := s.UpsertIngredient(ctx, model.Ingredient{Name: name, MeasurementUnit: unit}); err != nil {
		t.Fatalf("upsert ingredient %s: %v", name, err)
	}
	items, err := s.Ingredients(ctx, name)
	if err != nil || len(items) == 0 {
		t.Fatalf("lookup ingredient %s: %v", name, err)
	}
	return items[0]
}

func seedTag(t *testing.T, s *Store, name, slug string) model.Tag {
	t.Helper()

	ctx := context.Background()
	if err := s.UpsertTag(ctx, model.Tag{Name: name, Color: "#E26C2D", Slug: slug}); err != nil {
		t.Fatalf("upsert tag %s: %v", slug, err)
	}
	tags, err := s.Tags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	for _, tag := range tags {
		if tag.Slug == slug {
			return tag
		}
	}
	t.Fatalf("tag %s not found after upsert", slug)
	return model.Tag{}
}

func seedRecipe(t *testing.T, s *Store, author model.User, name string, tags []model.Tag, ingredients []model.IngredientAmount) model.Recipe {
	t.Helper()

	tagIDs := make([]int64, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.ID
	}
	r, err := s.CreateRecipe(context.Background(), model.Recipe{
		Author:      author,
		Name:        name,
		Image:       "recipes/test.png",
		Text:        "mix and serve",
		CookingTime: 10,
	}, ingredients, tagIDs)
	if err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	return r
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	s1, err := Open(path, 5000)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs migrate again against the existing schema.
	s2, err := Open(path, 5000)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	if err := s2.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestCheckpoint(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedUser(t, s, "a@example.com", "a")

	if err := s.Checkpoint(context.Background()); err != nil {
		t.Errorf("checkpoint: %v", err)
	}
}

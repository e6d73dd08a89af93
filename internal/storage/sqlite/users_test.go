package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	u := seedUser(t, s, "vasya@example.com", "vasya")

	if u.ID == 0 {
		t.Error("expected assigned ID")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := s.UserByEmail(context.Background(), "vasya@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if got.ID != u.ID || got.Username != "vasya" {
		t.Errorf("UserByEmail = %+v, want id %d username vasya", got, u.ID)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedUser(t, s, "vasya@example.com", "vasya")

	_, err := s.CreateUser(context.Background(), model.User{
		Email: "vasya@example.com", Username: "other", PasswordHash: "x",
	})
	if !errors.Is(err, model.ErrDuplicate) {
		t.Errorf("duplicate email = %v, want ErrDuplicate", err)
	}

	_, err = s.CreateUser(context.Background(), model.User{
		Email: "other@example.com", Username: "vasya", PasswordHash: "x",
	})
	if !errors.Is(err, model.ErrDuplicate) {
		t.Errorf("duplicate username = %v, want ErrDuplicate", err)
	}
}

func TestUserByID_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.UserByID(context.Background(), 999)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("UserByID = %v, want ErrNotFound", err)
	}
}

func TestUsers_Pagination(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedUser(t, s, "a@example.com", "a")
	seedUser(t, s, "b@example.com", "b")
	seedUser(t, s, "c@example.com", "c")

	users, total, err := s.Users(context.Background(), model.Page{Number: 2, Limit: 2})
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(users) != 1 {
		t.Fatalf("page 2 length = %d, want 1", len(users))
	}
	if users[0].Username != "c" {
		t.Errorf("page 2 user = %q, want c", users[0].Username)
	}
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	u := seedUser(t, s, "a@example.com", "a")

	if err := s.UpdatePassword(context.Background(), u.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	got, err := s.UserByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if got.PasswordHash != "newhash" {
		t.Errorf("hash = %q, want newhash", got.PasswordHash)
	}

	err = s.UpdatePassword(context.Background(), 999, "x")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("UpdatePassword(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeleteUser_Cascades(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@example.com", "a")
	ing := seedIngredient(t, s, "salt", "g")
	tag := seedTag(t, s, "Dinner", "dinner")
	r := seedRecipe(t, s, u, "soup", []model.Tag{tag}, []model.IngredientAmount{{ID: ing.ID, Amount: 5}})

	if err := s.InsertToken(ctx, "digest-a", u.ID); err != nil {
		t.Fatalf("InsertToken: %v", err)
	}

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := s.RecipeByID(ctx, r.ID, 0); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("recipe survived user deletion: %v", err)
	}
	if _, err := s.UserByToken(ctx, "digest-a"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("token survived user deletion: %v", err)
	}
}

func TestHasStaff(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.HasStaff(ctx)
	if err != nil {
		t.Fatalf("HasStaff: %v", err)
	}
	if ok {
		t.Error("HasStaff = true on empty database")
	}

	if _, err := s.CreateUser(ctx, model.User{
		Email: "admin@example.com", Username: "admin", PasswordHash: "x", IsStaff: true,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	ok, err = s.HasStaff(ctx)
	if err != nil {
		t.Fatalf("HasStaff: %v", err)
	}
	if !ok {
		t.Error("HasStaff = false after creating staff user")
	}
}

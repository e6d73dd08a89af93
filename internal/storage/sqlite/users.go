package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

const userColumns = "id, email, username, first_name, last_name, password_hash, is_staff, created_at"

// CreateUser inserts a new user and returns it with the assigned ID.
// Returns model.ErrDuplicate when the email or username is taken.
func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, is_staff)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, boolToInt(u.IsStaff),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicate
		}
		return model.User{}, fmt.Errorf("sqlite: create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: user id: %w", err)
	}
	return s.UserByID(ctx, id)
}

// UserByID fetches a user by primary key.
func (s *Store) UserByID(ctx context.Context, id int64) (model.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// UserByEmail fetches a user by email (case-insensitive).
func (s *Store) UserByEmail(ctx context.Context, email string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

// Users returns a page of users ordered by ID, plus the total count.
func (s *Store) Users(ctx context.Context, page model.Page) ([]model.User, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: count users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?",
		page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: list users rows: %w", err)
	}
	return users, total, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, userID)
	if err != nil {
		return fmt.Errorf("sqlite: update password: %w", err)
	}
	return requireAffected(res, "update password")
}

// DeleteUser removes a user; recipes, tokens, relations cascade.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: delete user: %w", err)
	}
	return requireAffected(res, "delete user")
}

// HasStaff reports whether at least one staff user exists.
func (s *Store) HasStaff(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE is_staff = 1").Scan(&n); err != nil {
		return false, fmt.Errorf("sqlite: count staff: %w", err)
	}
	return n > 0, nil
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count users: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u         model.User
		isStaff   int
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &isStaff, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: scan user: %w", err)
	}
	u.IsStaff = isStaff != 0
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// requireAffected converts a zero-row update/delete into model.ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: %s rows affected: %w", op, err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

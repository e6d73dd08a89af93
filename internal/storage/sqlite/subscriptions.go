package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// Subscribe makes userID follow authorID. Returns model.ErrSelfSubscribe
// for self-follows and model.ErrDuplicate for repeats.
func (s *Store) Subscribe(ctx context.Context, userID, authorID int64) error {
	if userID == authorID {
		return model.ErrSelfSubscribe
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, author_id) VALUES (?, ?)",
		userID, authorID,
	)
	if isUniqueViolation(err) {
		return model.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("sqlite: subscribe: %w", err)
	}
	return nil
}

// Unsubscribe removes a subscription. Returns model.ErrNotRelated when the
// user does not follow the author.
func (s *Store) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE user_id = ? AND author_id = ?",
		userID, authorID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unsubscribe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: unsubscribe rows affected: %w", err)
	}
	if n == 0 {
		return model.ErrNotRelated
	}
	return nil
}

// IsSubscribed reports whether userID follows authorID.
func (s *Store) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE user_id = ? AND author_id = ?",
		userID, authorID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: is subscribed: %w", err)
	}
	return n > 0, nil
}

// Subscriptions returns a page of authors the user follows, ordered by the
// author ID, plus the total count. IsSubscribed is true on every result.
func (s *Store) Subscriptions(ctx context.Context, userID int64, page model.Page) ([]model.User, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE user_id = ?", userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: count subscriptions: %w", err)
	}

	cols := prefixColumns("u", userColumns)
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cols+`
		FROM subscriptions sub
		JOIN users u ON u.id = sub.author_id
		WHERE sub.user_id = ?
		ORDER BY u.id
		LIMIT ? OFFSET ?`,
		userID, page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: list subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var authors []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		u.IsSubscribed = true
		authors = append(authors, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: list subscriptions rows: %w", err)
	}
	return authors, total, nil
}

// subscribedSet returns which of authorIDs the viewer follows. An anonymous
// viewer (0) follows nobody.
func (s *Store) subscribedSet(ctx context.Context, viewerID int64, authorIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(authorIDs))
	if viewerID == 0 || len(authorIDs) == 0 {
		return out, nil
	}

	query := "SELECT author_id FROM subscriptions WHERE user_id = ? AND author_id IN (" + placeholders(len(authorIDs)) + ")"
	args := append([]any{viewerID}, int64Args(authorIDs)...)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: subscribed set: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scan subscribed author: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: subscribed set rows: %w", err)
	}
	return out, nil
}

// prefixColumns prepends "alias." to each column in a comma-separated list.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

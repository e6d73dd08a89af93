package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// InsertToken stores a token digest for a user. The plain token never
// reaches the database.
func (s *Store) InsertToken(ctx context.Context, digest string, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO tokens (digest, user_id) VALUES (?, ?)",
		digest, userID,
	); err != nil {
		return fmt.Errorf("sqlite: insert token: %w", err)
	}
	return nil
}

// UserByToken resolves a token digest to its user and touches last_used_at.
// Returns model.ErrNotFound for unknown digests.
func (s *Store) UserByToken(ctx context.Context, digest string) (model.User, error) {
	var userID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id FROM tokens WHERE digest = ?", digest,
	).Scan(&userID)
	if err != nil {
		return model.User{}, model.ErrNotFound
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE tokens SET last_used_at = strftime('%Y-%m-%dT%H:%M:%fZ','now') WHERE digest = ?",
		digest,
	); err != nil {
		return model.User{}, fmt.Errorf("sqlite: touch token: %w", err)
	}

	return s.UserByID(ctx, userID)
}

// DeleteToken removes a token by digest (logout).
func (s *Store) DeleteToken(ctx context.Context, digest string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tokens WHERE digest = ?", digest)
	if err != nil {
		return fmt.Errorf("sqlite: delete token: %w", err)
	}
	return requireAffected(res, "delete token")
}

// PurgeTokens deletes tokens not used since the cutoff. Returns the number
// of tokens removed.
func (s *Store) PurgeTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tokens WHERE last_used_at < ?",
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: purge tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: purge tokens rows affected: %w", err)
	}
	return n, nil
}

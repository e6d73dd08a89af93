package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersion = 1

// schemaStatements are executed in order to create the database schema.
// All use IF NOT EXISTS for idempotent re-application.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT    NOT NULL UNIQUE COLLATE NOCASE,
		username      TEXT    NOT NULL UNIQUE,
		first_name    TEXT    NOT NULL DEFAULT '',
		last_name     TEXT    NOT NULL DEFAULT '',
		password_hash TEXT    NOT NULL,
		is_staff      INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,

	`CREATE TABLE IF NOT EXISTS tokens (
		digest       TEXT    PRIMARY KEY,
		user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at   TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		last_used_at TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tokens_user ON tokens(user_id)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		slug  TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS ingredients (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		name             TEXT NOT NULL,
		name_fold        TEXT NOT NULL,
		measurement_unit TEXT NOT NULL,
		UNIQUE (name, measurement_unit)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ingredients_name_fold ON ingredients(name_fold)`,

	`CREATE TABLE IF NOT EXISTS recipes (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name         TEXT    NOT NULL,
		image        TEXT    NOT NULL DEFAULT '',
		text         TEXT    NOT NULL DEFAULT '',
		cooking_time INTEGER NOT NULL,
		pub_date     TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_pub_date ON recipes(pub_date)`,

	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id     INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
		amount        INTEGER NOT NULL,
		PRIMARY KEY (recipe_id, ingredient_id)
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_tags (
		recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		tag_id    INTEGER NOT NULL REFERENCES tags(id),
		PRIMARY KEY (recipe_id, tag_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_id)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, recipe_id)
	)`,

	`CREATE TABLE IF NOT EXISTS shopping_cart (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, recipe_id)
	)`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, author_id),
		CHECK (user_id != author_id)
	)`,
}

// migrate creates or updates the database schema to the latest version.
// All DDL uses IF NOT EXISTS, making migration idempotent.
func migrate(db *sql.DB) error {
	ctx := context.TODO()

	// Ensure schema_version table exists first.
	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return fmt.Errorf("sqlite: create schema_version: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	if current >= schemaVersion {
		return nil
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: migrate: %w\nstatement: %s", err, stmt)
		}
	}

	if _, err := db.ExecContext(ctx, "INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("sqlite: record schema version: %w", err)
	}

	return nil
}

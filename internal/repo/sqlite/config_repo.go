// Package sqlite persists service configuration in a local SQLite database,
// mirroring the settings screens: each row is one key with an optional
// category (podcast, doubao, llm, custom, ...).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one configuration row.
type Entry struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

type ConfigRepo struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) if needed and
// ensures the schema exists.
func Open(ctx context.Context, path string) (*ConfigRepo, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	r := &ConfigRepo{db: db}
	if err := r.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *ConfigRepo) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS configs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    key TEXT NOT NULL UNIQUE,
    value TEXT,
    description TEXT,
    category TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_configs_category ON configs(category);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *ConfigRepo) Close() error { return r.db.Close() }

// Set inserts or updates one key.
func (r *ConfigRepo) Set(ctx context.Context, e Entry) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO configs (key, value, description, category, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    value = excluded.value,
    description = excluded.description,
    category = excluded.category,
    updated_at = excluded.updated_at`,
		e.Key, e.Value, e.Description, e.Category, now, now)
	if err != nil {
		return fmt.Errorf("set config %q: %w", e.Key, err)
	}
	return nil
}

// Get returns the value for one key, with ok reporting whether it exists.
func (r *ConfigRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT value FROM configs WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return v.String, true, nil
}

// List returns entries, optionally filtered to one category.
func (r *ConfigRepo) List(ctx context.Context, category string) ([]Entry, error) {
	q := `SELECT key, value, description, category FROM configs`
	var args []any
	if category != "" {
		q += ` WHERE category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY key`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var value, desc, cat sql.NullString
		if err := rows.Scan(&e.Key, &value, &desc, &cat); err != nil {
			return nil, err
		}
		e.Value, e.Description, e.Category = value.String, desc.String, cat.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// ByCategories returns a raw key -> value map across the given categories.
func (r *ConfigRepo) ByCategories(ctx context.Context, categories ...string) (map[string]string, error) {
	if len(categories) == 0 {
		return map[string]string{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(categories)), ",")
	args := make([]any, len(categories))
	for i, c := range categories {
		args[i] = c
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM configs WHERE category IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("configs by category: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = value.String
	}
	return out, rows.Err()
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio/models"

	_ "modernc.org/sqlite"
)

const themeSchema = `
CREATE TABLE IF NOT EXISTS themes (
    visitor TEXT PRIMARY KEY,
    theme TEXT NOT NULL CHECK(theme IN ('light','dark')),
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);`

// SQLiteThemeStore keeps preferences in a single SQLite table
type SQLiteThemeStore struct {
	db *sql.DB
}

// NewSQLiteThemeStore opens (or creates) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteThemeStore(path string) (*SQLiteThemeStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &StoreError{Op: OpThemeInit, Err: fmt.Errorf("opening database: %w", err)}
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(themeSchema); err != nil {
		db.Close()
		return nil, &StoreError{Op: OpThemeInit, Err: fmt.Errorf("running migrations: %w", err)}
	}
	return &SQLiteThemeStore{db: db}, nil
}

func (s *SQLiteThemeStore) Get(ctx context.Context, visitor string) (models.Theme, bool, error) {
	var theme string
	err := s.db.QueryRowContext(ctx, `SELECT theme FROM themes WHERE visitor = ?`, visitor).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{Op: OpThemeGet, Err: err}
	}
	return models.Theme(theme), true, nil
}

func (s *SQLiteThemeStore) Set(ctx context.Context, visitor string, theme models.Theme) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO themes (visitor, theme, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(visitor) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		visitor, string(theme))
	if err != nil {
		return &StoreError{Op: OpThemeSet, Err: err}
	}
	return nil
}

func (s *SQLiteThemeStore) Close() error {
	return s.db.Close()
}

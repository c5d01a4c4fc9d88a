// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/history/history.go
// Summary: SQLite journal of applied settings changes.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS changes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	applied_at TEXT NOT NULL,
	tool       TEXT NOT NULL,
	setting    TEXT NOT NULL,
	previous   TEXT NOT NULL,
	current    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_changes_tool ON changes(tool, setting, id);
`

// Change is one applied settings change.
type Change struct {
	ID        int64
	AppliedAt time.Time
	Tool      string
	Setting   string
	Previous  string
	Current   string
}

// Store journals settings changes so applets can show what was applied and
// offer the previous value when reverting.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the journal location under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".config", "icewmcp", "history.db")
	}
	return filepath.Join(dir, "icewmcp", "history.db")
}

// Open creates the journal database and its schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Record appends one change.
func (s *Store) Record(ctx context.Context, tool, setting, previous, current string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO changes (applied_at, tool, setting, previous, current) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), tool, setting, previous, current)
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

// Recent returns the newest changes first, at most limit rows.
func (s *Store) Recent(ctx context.Context, limit int) ([]Change, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, applied_at, tool, setting, previous, current FROM changes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Change
	for rows.Next() {
		var c Change
		var stamp string
		if err := rows.Scan(&c.ID, &stamp, &c.Tool, &c.Setting, &c.Previous, &c.Current); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		c.AppliedAt, _ = time.Parse(time.RFC3339, stamp)
		out = append(out, c)
	}
	return out, rows.Err()
}

// LastFor returns the most recent change for a tool and setting, or false when
// none was recorded.
func (s *Store) LastFor(ctx context.Context, tool, setting string) (Change, bool, error) {
	var c Change
	var stamp string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, applied_at, tool, setting, previous, current FROM changes
		 WHERE tool = ? AND setting = ? ORDER BY id DESC LIMIT 1`, tool, setting).
		Scan(&c.ID, &stamp, &c.Tool, &c.Setting, &c.Previous, &c.Current)
	if err == sql.ErrNoRows {
		return Change{}, false, nil
	}
	if err != nil {
		return Change{}, false, fmt.Errorf("query last change: %w", err)
	}
	c.AppliedAt, _ = time.Parse(time.RFC3339, stamp)
	return c, true, nil
}

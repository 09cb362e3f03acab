// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists executed searches in a local SQLite database.
// See docs/ARCHITECTURE.md § Search History.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultMaxEntries = 20

// Entry is one recorded search.
type Entry struct {
	ID        int64     `json:"id"`
	Keyword   string    `json:"keyword"`
	Mode      string    `json:"mode"`
	Venues    []string  `json:"venues"`
	YearFrom  int       `json:"year_from"`
	YearTo    int       `json:"year_to"`
	Results   int       `json:"results"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages the search-history SQLite database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens or creates the history database at path and creates the
// schema if it does not exist.
func Open(path string, maxEntries int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS search_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword TEXT NOT NULL,
		mode TEXT,
		venues TEXT,
		year_from INTEGER,
		year_to INTEGER,
		results INTEGER,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one search into the history.
func (s *Store) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history (keyword, mode, venues, year_from, year_to, results, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Keyword, e.Mode, strings.Join(e.Venues, ","),
		e.YearFrom, e.YearTo, e.Results,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the most recent searches, newest first. A limit of 0
// uses the store default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, keyword, mode, venues, year_from, year_to, results, created_at
		 FROM search_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var venues, createdAt string
		if err := rows.Scan(&e.ID, &e.Keyword, &e.Mode, &venues,
			&e.YearFrom, &e.YearTo, &e.Results, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if venues != "" {
			e.Venues = strings.Split(venues, ",")
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every recorded search.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

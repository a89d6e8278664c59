package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS comics (
		path      VARCHAR PRIMARY KEY,
		title     VARCHAR NOT NULL,
		format    VARCHAR NOT NULL,
		pages     INTEGER NOT NULL,
		opened_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		path       VARCHAR PRIMARY KEY,
		page       INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

// InitDuckDB opens the database at path, creating parent directories and
// tables as needed.
func InitDuckDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}

// Repository stores what the reader has opened and where it stopped. The
// provider core never reads it.
type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// RecordOpened inserts or refreshes a library entry.
func (r *Repository) RecordOpened(entry *LibraryEntry) error {
	if entry.OpenedAt.IsZero() {
		entry.OpenedAt = time.Now()
	}
	_, err := r.db.Exec(`
		INSERT INTO comics (path, title, format, pages, opened_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			title = excluded.title,
			format = excluded.format,
			pages = excluded.pages,
			opened_at = excluded.opened_at`,
		entry.Path, entry.Title, entry.Format, entry.Pages, entry.OpenedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", entry.Path, err)
	}
	return nil
}

// GetEntry returns the entry for path, or nil when it was never opened.
func (r *Repository) GetEntry(path string) (*LibraryEntry, error) {
	var e LibraryEntry
	err := r.db.QueryRow(
		`SELECT path, title, format, pages, opened_at FROM comics WHERE path = ?`, path,
	).Scan(&e.Path, &e.Title, &e.Format, &e.Pages, &e.OpenedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return &e, nil
}

// ListRecent returns up to limit entries, most recently opened first.
func (r *Repository) ListRecent(limit int) ([]*LibraryEntry, error) {
	rows, err := r.db.Query(
		`SELECT path, title, format, pages, opened_at FROM comics ORDER BY opened_at DESC, path LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	defer rows.Close()

	var entries []*LibraryEntry
	for rows.Next() {
		var e LibraryEntry
		if err := rows.Scan(&e.Path, &e.Title, &e.Format, &e.Pages, &e.OpenedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// SaveBookmark remembers page as the last one viewed in path.
func (r *Repository) SaveBookmark(path string, page int) error {
	_, err := r.db.Exec(`
		INSERT INTO bookmarks (path, page, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET page = excluded.page, updated_at = excluded.updated_at`,
		path, page, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save bookmark for %s: %w", path, err)
	}
	return nil
}

// GetBookmark returns the bookmark for path, or nil when there is none.
func (r *Repository) GetBookmark(path string) (*Bookmark, error) {
	var b Bookmark
	err := r.db.QueryRow(
		`SELECT path, page, updated_at FROM bookmarks WHERE path = ?`, path,
	).Scan(&b.Path, &b.Page, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark for %s: %w", path, err)
	}
	return &b, nil
}

// Forget removes path and its bookmark from the library.
func (r *Repository) Forget(path string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM bookmarks WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM comics WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete comic: %w", err)
	}
	return tx.Commit()
}

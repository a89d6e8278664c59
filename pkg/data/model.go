package data

import "time"

// LibraryEntry is a comic the reader has opened before.
type LibraryEntry struct {
	Path     string
	Title    string
	Format   string // "zip" or "rar"
	Pages    int
	OpenedAt time.Time
}

// Bookmark is the last page viewed in a comic.
type Bookmark struct {
	Path      string
	Page      int
	UpdatedAt time.Time
}

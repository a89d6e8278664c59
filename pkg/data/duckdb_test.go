package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewDuckDBRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestInitDuckDBCreatesTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('comics', 'bookmarks')`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if tableCount != 2 {
		t.Errorf("Expected 2 tables, got %d", tableCount)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("DB file was not created")
	}
}

func TestRecordAndGetEntry(t *testing.T) {
	repo := setupTestDB(t)

	entry := &LibraryEntry{
		Path:     "/comics/saga-001.cbz",
		Title:    "saga-001.cbz",
		Format:   "zip",
		Pages:    24,
		OpenedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := repo.RecordOpened(entry); err != nil {
		t.Fatalf("Failed to record entry: %v", err)
	}

	got, err := repo.GetEntry(entry.Path)
	if err != nil {
		t.Fatalf("Failed to get entry: %v", err)
	}
	if got == nil {
		t.Fatal("Expected entry to be found")
	}
	if got.Title != entry.Title || got.Format != "zip" || got.Pages != 24 {
		t.Errorf("Unexpected entry: %+v", got)
	}
	if !got.OpenedAt.Equal(entry.OpenedAt) {
		t.Errorf("Expected OpenedAt %v, got %v", entry.OpenedAt, got.OpenedAt)
	}
}

func TestRecordOpenedUpsert(t *testing.T) {
	repo := setupTestDB(t)

	entry := &LibraryEntry{Path: "/comics/a.cbr", Title: "a.cbr", Format: "rar", Pages: 10}
	if err := repo.RecordOpened(entry); err != nil {
		t.Fatalf("Failed to record entry: %v", err)
	}
	if entry.OpenedAt.IsZero() {
		t.Error("Expected OpenedAt to be filled in")
	}

	entry.Pages = 12
	entry.OpenedAt = entry.OpenedAt.Add(time.Hour)
	if err := repo.RecordOpened(entry); err != nil {
		t.Fatalf("Failed to update entry: %v", err)
	}

	entries, err := repo.ListRecent(10)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Pages != 12 {
		t.Errorf("Expected 12 pages, got %d", entries[0].Pages)
	}
}

func TestListRecentOrdering(t *testing.T) {
	repo := setupTestDB(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old.cbz", "newest.cbz", "middle.cbr"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		err := repo.RecordOpened(&LibraryEntry{
			Path:     "/comics/" + name,
			Title:    name,
			Format:   "zip",
			Pages:    1,
			OpenedAt: base.Add(offsets[i]),
		})
		if err != nil {
			t.Fatalf("Failed to record %s: %v", name, err)
		}
	}

	entries, err := repo.ListRecent(2)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "newest.cbz" || entries[1].Title != "middle.cbr" {
		t.Errorf("Unexpected order: %s, %s", entries[0].Title, entries[1].Title)
	}
}

func TestBookmarks(t *testing.T) {
	repo := setupTestDB(t)

	b, err := repo.GetBookmark("/comics/none.cbz")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if b != nil {
		t.Error("Expected no bookmark")
	}

	if err := repo.SaveBookmark("/comics/a.cbz", 3); err != nil {
		t.Fatalf("Failed to save bookmark: %v", err)
	}
	if err := repo.SaveBookmark("/comics/a.cbz", 7); err != nil {
		t.Fatalf("Failed to move bookmark: %v", err)
	}

	b, err = repo.GetBookmark("/comics/a.cbz")
	if err != nil {
		t.Fatalf("Failed to get bookmark: %v", err)
	}
	if b == nil || b.Page != 7 {
		t.Errorf("Expected bookmark at page 7, got %+v", b)
	}
}

func TestForget(t *testing.T) {
	repo := setupTestDB(t)

	path := "/comics/gone.cbz"
	repo.RecordOpened(&LibraryEntry{Path: path, Title: "gone.cbz", Format: "zip", Pages: 2})
	repo.SaveBookmark(path, 1)

	if err := repo.Forget(path); err != nil {
		t.Fatalf("Failed to forget: %v", err)
	}

	if e, _ := repo.GetEntry(path); e != nil {
		t.Error("Expected entry to be deleted")
	}
	if b, _ := repo.GetBookmark(path); b != nil {
		t.Error("Expected bookmark to be deleted")
	}
}

// Package archive implements read access to the container formats comics
// ship in. Each Backend lists the regular-file entries of one archive and
// extracts them below a destination directory.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnreadableArchive reports a file that is not a valid instance of the
	// backend's container format.
	ErrUnreadableArchive = errors.New("unreadable archive")
	// ErrExtractionFailed reports an I/O or format error while writing entries.
	ErrExtractionFailed = errors.New("extraction failed")
)

// Backend is the format-specific access to a single archive file.
type Backend interface {
	// Name identifies the format family ("zip" or "rar").
	Name() string
	// ListEntries returns the names of the regular files in the archive, in
	// archive order, with duplicate names collapsed to their first position.
	ListEntries(path string) ([]string, error)
	// ExtractAll writes every regular file below dest, keeping the relative
	// entry path. Later entries overwrite earlier ones sharing a name.
	ExtractAll(path, dest string) error
}

// Extension returns the extension of path without the leading dot. Dotfiles
// such as ".cbz" have no extension.
func Extension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// ForExtension maps a case-sensitive extension to its backend.
func ForExtension(ext string) (Backend, bool) {
	switch ext {
	case "zip", "cbz":
		return Zip{}, true
	case "rar", "cbr":
		return Rar{}, true
	default:
		return nil, false
	}
}

// ForPath picks the backend for path from its extension.
func ForPath(path string) (Backend, bool) {
	return ForExtension(Extension(path))
}

// Supported reports whether path carries a recognized archive extension.
func Supported(path string) bool {
	_, ok := ForPath(path)
	return ok
}

func unreadable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnreadableArchive, path, err)
}

func extractionFailed(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExtractionFailed, name, err)
}

// entryPath resolves an entry name below dest, refusing names that are
// absolute or climb out of it.
func entryPath(dest, name string) (string, error) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	if !filepath.IsLocal(rel) {
		return "", extractionFailed(name, errors.New("entry path escapes destination"))
	}
	return filepath.Join(dest, rel), nil
}

// writeEntry copies r into the file for name below dest.
func writeEntry(dest, name string, r io.Reader) error {
	target, err := entryPath(dest, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return extractionFailed(name, err)
	}

	f, err := os.Create(target)
	if err != nil {
		return extractionFailed(name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return extractionFailed(name, err)
	}
	if err := f.Close(); err != nil {
		return extractionFailed(name, err)
	}
	return nil
}

// names accumulates entry names in order, skipping repeats. Names that
// differ only in their separator (`a\1.png`, `a/1.png`) extract to the same
// file and count as repeats.
type names struct {
	list []string
	seen map[string]struct{}
}

func (n *names) add(name string) {
	if n.seen == nil {
		n.seen = make(map[string]struct{})
	}
	key := strings.ReplaceAll(name, `\`, "/")
	if _, ok := n.seen[key]; ok {
		return
	}
	n.seen[key] = struct{}{}
	n.list = append(n.list, name)
}

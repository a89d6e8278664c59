package providers

import "github.com/kerbaras/comics/pkg/imaging"

// Options controls how comics are opened.
type Options struct {
	// TempDir is the parent of each comic's working directory. Empty means
	// the platform temporary directory.
	TempDir string
	// EagerDecode decodes every page while opening; the first failure aborts
	// the open. Otherwise pages decode on first access.
	EagerDecode bool
	// Thumbnails, when set, memoizes Page.Thumbnail renditions.
	Thumbnails *imaging.ThumbnailCache
}

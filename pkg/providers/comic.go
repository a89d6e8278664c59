package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kerbaras/comics/pkg/archive"
	"github.com/kerbaras/comics/pkg/logger"
)

// Comic is one opened archive. It owns a working directory holding the
// extracted entries until Close is called.
type Comic struct {
	title   string
	path    string
	dir     string
	backend archive.Backend
	pages   []*Page
	info    *ComicInfo

	closeOnce sync.Once
	closeErr  error
}

// OpenComic lists and extracts the archive at path into a fresh working
// directory and builds its pages sorted by entry name. The working directory
// is removed again if anything fails.
func OpenComic(path string, opts Options) (*Comic, error) {
	backend, ok := archive.ForPath(path)
	if !ok {
		return nil, &OpenError{Path: path, Err: ErrInvalidArchiveType}
	}

	dir, err := os.MkdirTemp(opts.TempDir, "comic-*")
	if err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("failed to create working directory: %w", err)}
	}

	c := &Comic{
		title:   filepath.Base(path),
		path:    path,
		dir:     dir,
		backend: backend,
	}
	if err := c.load(opts); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logger.WithComponent("providers").WithError(rmErr).Warn("failed to remove working directory")
		}
		return nil, &OpenError{Path: path, Err: err}
	}
	return c, nil
}

func (c *Comic) load(opts Options) error {
	log := logger.WithComponent("providers").WithField("comic", c.title)

	entries, err := c.backend.ListEntries(c.path)
	if err != nil {
		return err
	}
	log.WithField("entries", len(entries)).Debug("listed archive")

	if err := c.backend.ExtractAll(c.path, c.dir); err != nil {
		return err
	}
	log.WithField("dir", c.dir).Debug("extracted archive")

	pages := make([]*Page, 0, len(entries))
	for _, name := range entries {
		file := filepath.Join(c.dir, filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
		if isComicInfo(name) {
			info, err := readComicInfo(file)
			if err != nil {
				log.WithError(err).Warn("ignoring comic metadata")
			}
			c.info = info
		}
		pages = append(pages, newPage(name, file, opts.Thumbnails))
	}

	// Byte-wise comparison of entry names, the order of an alphabetical listing.
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].name < pages[j].name
	})
	for i, p := range pages {
		p.index = i
	}
	c.pages = pages

	if opts.EagerDecode {
		for _, p := range c.pages {
			if _, err := p.Image(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Title is the archive's file name including its extension.
func (c *Comic) Title() string { return c.title }

// Path is the archive file the comic was opened from.
func (c *Comic) Path() string { return c.path }

// Dir is the working directory holding the extracted entries.
func (c *Comic) Dir() string { return c.dir }

// Format names the archive backend ("zip" or "rar").
func (c *Comic) Format() string { return c.backend.Name() }

// Info returns the parsed ComicInfo.xml, or nil when the archive has none.
func (c *Comic) Info() *ComicInfo { return c.info }

// Length is the number of pages.
func (c *Comic) Length() int { return len(c.pages) }

// Page returns the page at index.
func (c *Comic) Page(index int) (PageProvider, bool) {
	p, ok := c.PageAt(index)
	if !ok {
		return nil, false
	}
	return p, true
}

// PageAt is Page with the concrete type.
func (c *Comic) PageAt(index int) (*Page, bool) {
	if index < 0 || index >= len(c.pages) {
		return nil, false
	}
	return c.pages[index], true
}

// Pages returns the pages in order.
func (c *Comic) Pages() []*Page {
	out := make([]*Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Close deletes the working directory. Pages must not be decoded afterwards;
// images already decoded stay usable. Close is safe to call more than once.
func (c *Comic) Close() error {
	c.closeOnce.Do(func() {
		for _, p := range c.pages {
			if p.thumbs != nil {
				p.thumbs.Forget(p.path)
			}
		}
		if err := os.RemoveAll(c.dir); err != nil {
			c.closeErr = fmt.Errorf("failed to remove working directory %s: %w", c.dir, err)
		}
	})
	return c.closeErr
}

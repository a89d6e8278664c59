// Package providers turns comic archives into ordered, indexable pages for a
// presentation layer. A Collection owns its Comics, and each Comic owns its
// Pages and the working directory they were extracted to.
package providers

import (
	"errors"
	"fmt"

	"github.com/kerbaras/comics/pkg/archive"
	"github.com/kerbaras/comics/pkg/logger"
)

// Failure is a candidate path that was dropped because it failed to open.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Collection holds, in input order, the comics that opened successfully.
type Collection struct {
	name     string
	paths    []string
	comics   []*Comic
	failures []Failure
}

// NewCollection keeps the paths with a recognized archive extension and
// opens each of them. A path that fails to open is dropped and recorded in
// Failures; it never prevents the others from opening.
func NewCollection(name string, paths []string, opts Options) *Collection {
	log := logger.WithComponent("providers").WithField("collection", name)
	c := &Collection{name: name}

	for _, path := range paths {
		if !archive.Supported(path) {
			log.WithField("path", path).Debug("skipping unrecognized file")
			continue
		}
		c.paths = append(c.paths, path)

		comic, err := OpenComic(path, opts)
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("dropping comic")
			c.failures = append(c.failures, Failure{Path: path, Err: err})
			continue
		}
		c.comics = append(c.comics, comic)
	}

	log.WithField("comics", len(c.comics)).WithField("failed", len(c.failures)).Debug("collection ready")
	return c
}

func (c *Collection) Name() string { return c.name }

// Size is the number of comics that opened.
func (c *Collection) Size() int { return len(c.comics) }

// Comic returns the comic at index.
func (c *Collection) Comic(index int) (ComicProvider, bool) {
	comic, ok := c.ComicAt(index)
	if !ok {
		return nil, false
	}
	return comic, true
}

// ComicAt is Comic with the concrete type.
func (c *Collection) ComicAt(index int) (*Comic, bool) {
	if index < 0 || index >= len(c.comics) {
		return nil, false
	}
	return c.comics[index], true
}

// Comics returns the opened comics in input order.
func (c *Collection) Comics() []*Comic {
	out := make([]*Comic, len(c.comics))
	copy(out, c.comics)
	return out
}

// Paths returns the candidate paths that carried a recognized extension,
// whether or not they opened.
func (c *Collection) Paths() []string {
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}

// Failures returns the dropped paths in input order.
func (c *Collection) Failures() []Failure {
	out := make([]Failure, len(c.failures))
	copy(out, c.failures)
	return out
}

// Err joins every open failure, or returns nil when all candidates opened.
func (c *Collection) Err() error {
	errs := make([]error, len(c.failures))
	for i, f := range c.failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Close closes every comic, removing their working directories.
func (c *Collection) Close() error {
	var errs []error
	for _, comic := range c.comics {
		if err := comic.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package providers

import (
	"fmt"
	"image"
	"os"
	"sync"
	"sync/atomic"

	"github.com/kerbaras/comics/pkg/imaging"
)

// Page is one image entry of an opened comic. Its image is decoded from the
// extracted file on first request; the outcome, success or failure, is kept
// for every later call.
type Page struct {
	index  int
	name   string
	path   string
	thumbs *imaging.ThumbnailCache

	once    sync.Once
	decoded atomic.Bool
	img     image.Image
	format  string
	err     error
}

func newPage(name, path string, thumbs *imaging.ThumbnailCache) *Page {
	return &Page{name: name, path: path, thumbs: thumbs}
}

// FileName returns the entry name inside the archive.
func (p *Page) FileName() string { return p.name }

// Index returns the page's position in its comic.
func (p *Page) Index() int { return p.index }

// Path returns the extracted file backing the page. It is only valid while
// the owning comic is open.
func (p *Page) Path() string { return p.path }

// Image returns the decoded raster image.
func (p *Page) Image() (image.Image, error) {
	p.once.Do(p.decode)
	return p.img, p.err
}

// Format returns the sniffed codec name ("png", "jpeg", ...), decoding the
// page if needed.
func (p *Page) Format() (string, error) {
	p.once.Do(p.decode)
	return p.format, p.err
}

// Bounds returns the decoded image's bounds, decoding the page if needed.
func (p *Page) Bounds() (image.Rectangle, error) {
	img, err := p.Image()
	if err != nil {
		return image.Rectangle{}, err
	}
	return img.Bounds(), nil
}

// Decoded reports whether the page has left the undecoded state.
func (p *Page) Decoded() bool {
	return p.decoded.Load()
}

func (p *Page) decode() {
	defer p.decoded.Store(true)

	// The extracted file is gone once the owning comic is closed.
	f, err := os.Open(p.path)
	if err != nil {
		p.err = fmt.Errorf("%w: page %s: %w", ErrExtractionFailed, p.name, err)
		return
	}
	defer f.Close()

	img, format, err := imaging.Decode(f)
	if err != nil {
		p.err = fmt.Errorf("page %s: %w", p.name, err)
		return
	}
	p.img = img
	p.format = format
}

// PNG returns the page re-encoded as PNG.
func (p *Page) PNG() ([]byte, error) {
	img, err := p.Image()
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(img)
}

// Thumbnail returns the page scaled to fit maxWidth x maxHeight.
func (p *Page) Thumbnail(maxWidth, maxHeight int) (image.Image, error) {
	render := func() (image.Image, error) {
		img, err := p.Image()
		if err != nil {
			return nil, err
		}
		return imaging.Fit(img, maxWidth, maxHeight), nil
	}
	if p.thumbs == nil {
		return render()
	}
	key := imaging.ThumbnailKey{Source: p.path, MaxWidth: maxWidth, MaxHeight: maxHeight}
	return p.thumbs.Get(key, render)
}

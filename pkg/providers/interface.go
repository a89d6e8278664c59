package providers

import "image"

// CollectionProvider exposes indexed, read-only access to a set of opened comics.
type CollectionProvider interface {
	Name() string
	Size() int
	// Comic returns false for any index outside [0, Size()).
	Comic(index int) (ComicProvider, bool)
}

// ComicProvider exposes one opened archive regardless of its format.
type ComicProvider interface {
	Title() string
	Length() int
	// Page returns false for any index outside [0, Length()).
	Page(index int) (PageProvider, bool)
}

// PageProvider exposes one decodable page image and its entry name.
type PageProvider interface {
	Image() (image.Image, error)
	FileName() string
}

var (
	_ CollectionProvider = (*Collection)(nil)
	_ ComicProvider      = (*Comic)(nil)
	_ PageProvider       = (*Page)(nil)
)

package imaging

import (
	"fmt"
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ThumbnailKey identifies one scaled rendition of one source image.
type ThumbnailKey struct {
	Source    string
	MaxWidth  int
	MaxHeight int
}

// ThumbnailCache keeps the most recently used thumbnails in memory. It is
// safe for concurrent use.
type ThumbnailCache struct {
	cache *lru.Cache[ThumbnailKey, image.Image]
}

// NewThumbnailCache creates a cache holding at most size thumbnails.
func NewThumbnailCache(size int) (*ThumbnailCache, error) {
	cache, err := lru.New[ThumbnailKey, image.Image](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail cache: %w", err)
	}
	return &ThumbnailCache{cache: cache}, nil
}

// Get returns the cached thumbnail for key, rendering and storing it with
// render on a miss. Render errors are not cached.
func (c *ThumbnailCache) Get(key ThumbnailKey, render func() (image.Image, error)) (image.Image, error) {
	if img, ok := c.cache.Get(key); ok {
		return img, nil
	}
	img, err := render()
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, img)
	return img, nil
}

// Forget drops every thumbnail rendered from source.
func (c *ThumbnailCache) Forget(source string) {
	for _, key := range c.cache.Keys() {
		if key.Source == source {
			c.cache.Remove(key)
		}
	}
}

// Len reports how many thumbnails are cached.
func (c *ThumbnailCache) Len() int {
	return c.cache.Len()
}

package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/kerbaras/comics/pkg/logger"
	"github.com/kerbaras/comics/pkg/providers"
)

// DecodeProgress reports one page that finished decoding.
type DecodeProgress struct {
	Comic string
	Page  int
	Name  string
	Done  int
	Total int
	Error error
}

// PageFailure is a page whose image could not be decoded.
type PageFailure struct {
	Index int
	Name  string
	Err   error
}

func (f PageFailure) Error() string {
	return fmt.Sprintf("page %d (%s): %v", f.Index, f.Name, f.Err)
}

func (f PageFailure) Unwrap() error {
	return f.Err
}

// Decoder decodes pages of a comic on a bounded number of goroutines. Pages
// memoize their result, so decoding a page twice is cheap.
type Decoder struct {
	workers      int
	progressChan chan DecodeProgress
	closeOnce    sync.Once
}

// NewDecoder creates a Decoder running at most workers decodes at a time.
func NewDecoder(workers int) *Decoder {
	if workers < 1 {
		workers = 1
	}
	return &Decoder{
		workers:      workers,
		progressChan: make(chan DecodeProgress, 100),
	}
}

// Progress returns the channel receiving per-page progress updates. Updates
// are dropped when nobody keeps up with them.
func (d *Decoder) Progress() <-chan DecodeProgress {
	return d.progressChan
}

// Decode decodes the pages of comic at indexes, or every page when indexes
// is nil, and returns the failures ordered by page index. Indexes outside the
// comic are ignored. Cancelling ctx stops scheduling further pages and
// returns ctx.Err().
func (d *Decoder) Decode(ctx context.Context, comic *providers.Comic, indexes []int) ([]PageFailure, error) {
	if indexes == nil {
		indexes = make([]int, comic.Length())
		for i := range indexes {
			indexes[i] = i
		}
	}

	pages := make([]*providers.Page, 0, len(indexes))
	for _, i := range indexes {
		if p, ok := comic.PageAt(i); ok {
			pages = append(pages, p)
		}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		failures  []PageFailure
		done      atomic.Int64
		semaphore = make(chan struct{}, d.workers)
	)

schedule:
	for _, page := range pages {
		select {
		case <-ctx.Done():
			break schedule
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(page *providers.Page) {
			defer wg.Done()
			defer func() { <-semaphore }()

			_, err := page.Image()
			if err != nil {
				mu.Lock()
				failures = append(failures, PageFailure{Index: page.Index(), Name: page.FileName(), Err: err})
				mu.Unlock()
			}

			d.sendProgress(DecodeProgress{
				Comic: comic.Title(),
				Page:  page.Index(),
				Name:  page.FileName(),
				Done:  int(done.Add(1)),
				Total: len(pages),
				Error: err,
			})
		}(page)
	}

	wg.Wait()

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Index < failures[j].Index
	})

	if len(failures) > 0 {
		logger.WithComponent("services").
			WithField("comic", comic.Title()).
			WithField("failed", len(failures)).
			Debug("some pages failed to decode")
	}

	return failures, ctx.Err()
}

func (d *Decoder) sendProgress(progress DecodeProgress) {
	select {
	case d.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Close closes the progress channel. The Decoder must not be used after.
func (d *Decoder) Close() {
	d.closeOnce.Do(func() {
		close(d.progressChan)
	})
}

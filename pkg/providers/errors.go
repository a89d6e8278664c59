package providers

import (
	"errors"
	"fmt"

	"github.com/kerbaras/comics/pkg/archive"
	"github.com/kerbaras/comics/pkg/imaging"
)

var (
	// ErrInvalidArchiveType reports a path whose extension is not one of
	// zip, cbz, rar or cbr (matched case-sensitively).
	ErrInvalidArchiveType = errors.New("invalid archive type")

	ErrUnreadableArchive      = archive.ErrUnreadableArchive
	ErrExtractionFailed       = archive.ErrExtractionFailed
	ErrUnsupportedImageFormat = imaging.ErrUnsupportedImageFormat
	ErrCorruptImageData       = imaging.ErrCorruptImageData
)

// OpenError records why a comic could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open comic %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

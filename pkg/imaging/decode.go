// Package imaging decodes page images by content sniffing and derives
// scaled renditions of them.
package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	// Registered decoders; image.Decode picks one from the content's magic bytes.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedImageFormat reports content no registered decoder recognizes.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	// ErrCorruptImageData reports content that was recognized but failed to decode.
	ErrCorruptImageData = errors.New("corrupt image data")
)

// Decode decodes r, ignoring any file extension, and returns the image along
// with the sniffed format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedImageFormat, err)
		}
		return nil, format, fmt.Errorf("%w: %w", ErrCorruptImageData, err)
	}
	return img, format, nil
}

// DecodeConfig sniffs the format and dimensions without decoding pixels.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return cfg, "", fmt.Errorf("%w: %w", ErrUnsupportedImageFormat, err)
		}
		return cfg, format, fmt.Errorf("%w: %w", ErrCorruptImageData, err)
	}
	return cfg, format, nil
}

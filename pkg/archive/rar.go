package archive

import (
	"errors"
	"io"

	"github.com/nwaples/rardecode/v2"
)

// Rar reads RAR and CBR archives. Encrypted archives are not supported and
// report ErrUnreadableArchive.
type Rar struct{}

func (Rar) Name() string { return "rar" }

func (Rar) ListEntries(path string) ([]string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	defer r.Close()

	var n names
	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, unreadable(path, err)
		}
		if header.IsDir {
			continue
		}
		n.add(header.Name)
	}
	return n.list, nil
}

func (Rar) ExtractAll(path, dest string) error {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return extractionFailed(path, err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return extractionFailed(path, err)
		}
		if header.IsDir {
			continue
		}
		// The reader yields the current entry's data and verifies its
		// checksum at EOF.
		if err := writeEntry(dest, header.Name, r); err != nil {
			return err
		}
	}
}

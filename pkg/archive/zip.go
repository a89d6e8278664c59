package archive

import (
	"archive/zip"
	"strings"
)

// Zip reads ZIP and CBZ archives.
type Zip struct{}

func (Zip) Name() string { return "zip" }

func (Zip) ListEntries(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	defer r.Close()

	var n names
	for _, f := range r.File {
		if isZipDir(f) {
			continue
		}
		n.add(f.Name)
	}
	return n.list, nil
}

func (Zip) ExtractAll(path, dest string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return extractionFailed(path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if isZipDir(f) {
			continue
		}
		if err := extractZipFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, dest string) error {
	// Unknown compression methods fail here with zip.ErrAlgorithm.
	rc, err := f.Open()
	if err != nil {
		return extractionFailed(f.Name, err)
	}
	defer rc.Close()
	return writeEntry(dest, f.Name, rc)
}

func isZipDir(f *zip.File) bool {
	return f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/")
}

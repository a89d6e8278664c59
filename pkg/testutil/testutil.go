// Package testutil builds comic archives and page images for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Entry is one file to place in a generated archive.
type Entry struct {
	Name string
	Data []byte
}

// PNG encodes a w x h image filled with c.
func PNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Solid(w, h, c)); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// JPEG encodes a w x h image filled with c.
func JPEG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Solid(w, h, c), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to encode JPEG: %v", err)
	}
	return buf.Bytes()
}

// Solid returns an RGBA image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WriteZip writes entries to a ZIP archive at dir/name and returns its path.
func WriteZip(t testing.TB, dir, name string, entries []Entry) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("Failed to create zip entry %s: %v", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			t.Fatalf("Failed to write zip entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return WriteFile(t, dir, name, buf.Bytes())
}

// WriteZipWithMethod writes a single raw entry declaring the given
// compression method, which readers cannot decompress unless registered.
func WriteZipWithMethod(t testing.TB, dir, name string, e Entry, method uint16) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateRaw(&zip.FileHeader{
		Name:               e.Name,
		Method:             method,
		CRC32:              crc32.ChecksumIEEE(e.Data),
		CompressedSize64:   uint64(len(e.Data)),
		UncompressedSize64: uint64(len(e.Data)),
	})
	if err != nil {
		t.Fatalf("Failed to create raw zip entry: %v", err)
	}
	if _, err := w.Write(e.Data); err != nil {
		t.Fatalf("Failed to write raw zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return WriteFile(t, dir, name, buf.Bytes())
}

// WriteRar writes entries to a RAR 4.x archive at dir/name using the store
// method, so no compressor is needed.
func WriteRar(t testing.TB, dir, name string, entries []Entry) string {
	t.Helper()
	return WriteFile(t, dir, name, RarBytes(entries))
}

const (
	rarBlockMain = 0x73
	rarBlockFile = 0x74
	rarBlockEnd  = 0x7b

	rarLongBlock   = 0x8000
	rarSkipIfUnkwn = 0x4000
	rarMethodStore = 0x30
	rarUnpackVer   = 29
	rarAttrArchive = 0x20
)

// RarBytes renders a stored RAR 4.x archive.
func RarBytes(entries []Entry) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x00})

	buf.Write(rarBlock(rarBlockMain, 0, make([]byte, 6)))

	for _, e := range entries {
		var body bytes.Buffer
		le := binary.LittleEndian
		body.Write(le.AppendUint32(nil, uint32(len(e.Data)))) // packed size
		body.Write(le.AppendUint32(nil, uint32(len(e.Data)))) // unpacked size
		body.WriteByte(0)                                     // host OS: MS-DOS
		body.Write(le.AppendUint32(nil, crc32.ChecksumIEEE(e.Data)))
		body.Write(le.AppendUint32(nil, 0)) // DOS time
		body.WriteByte(rarUnpackVer)
		body.WriteByte(rarMethodStore)
		body.Write(le.AppendUint16(nil, uint16(len(e.Name))))
		body.Write(le.AppendUint32(nil, rarAttrArchive))
		body.WriteString(e.Name)

		buf.Write(rarBlock(rarBlockFile, rarLongBlock, body.Bytes()))
		buf.Write(e.Data)
	}

	buf.Write(rarBlock(rarBlockEnd, rarSkipIfUnkwn, nil))
	return buf.Bytes()
}

// rarBlock renders a block header: CRC16, type, flags, size, body. The CRC
// is the low half of the CRC32 of everything after the CRC field.
func rarBlock(typ byte, flags uint16, body []byte) []byte {
	le := binary.LittleEndian
	header := []byte{0, 0, typ}
	header = le.AppendUint16(header, flags)
	header = le.AppendUint16(header, uint16(7+len(body)))
	header = append(header, body...)
	le.PutUint16(header[0:2], uint16(crc32.ChecksumIEEE(header[2:])))
	return header
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

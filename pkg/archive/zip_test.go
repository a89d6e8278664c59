package archive

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/comics/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZip_ListEntries(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteZip(t, dir, "issue.cbz", []testutil.Entry{
		{Name: "b.jpg", Data: []byte("b")},
		{Name: "a.png", Data: []byte("a")},
		{Name: "extras/", Data: nil},
		{Name: "extras/c.png", Data: []byte("c")},
	})

	entries, err := Zip{}.ListEntries(path)
	require.NoError(t, err)

	// Archive order, directories dropped.
	assert.Equal(t, []string{"b.jpg", "a.png", "extras/c.png"}, entries)
}

func TestZip_ListEntriesUnreadable(t *testing.T) {
	dir := t.TempDir()

	t.Run("not a zip", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "bogus.cbz", []byte("definitely not a zip archive"))
		_, err := Zip{}.ListEntries(path)
		assert.ErrorIs(t, err, ErrUnreadableArchive)
	})

	t.Run("truncated", func(t *testing.T) {
		valid := testutil.WriteZip(t, dir, "valid.cbz", []testutil.Entry{
			{Name: "a.png", Data: testutil.PNG(t, 4, 4, color.White)},
		})
		data, err := os.ReadFile(valid)
		require.NoError(t, err)

		path := testutil.WriteFile(t, dir, "truncated.cbz", data[:len(data)/2])
		_, err = Zip{}.ListEntries(path)
		assert.ErrorIs(t, err, ErrUnreadableArchive)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Zip{}.ListEntries(filepath.Join(dir, "missing.cbz"))
		assert.ErrorIs(t, err, ErrUnreadableArchive)
	})
}

func TestZip_ExtractAll(t *testing.T) {
	dir := t.TempDir()
	dest := t.TempDir()
	path := testutil.WriteZip(t, dir, "issue.zip", []testutil.Entry{
		{Name: "001.png", Data: []byte("one")},
		{Name: "ch2/001.png", Data: []byte("two")},
	})

	require.NoError(t, Zip{}.ExtractAll(path, dest))

	got, err := os.ReadFile(filepath.Join(dest, "001.png"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	// Same base name in another directory does not collide.
	got, err = os.ReadFile(filepath.Join(dest, "ch2", "001.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestZip_ExtractAllDuplicateNamesOverwrite(t *testing.T) {
	dir := t.TempDir()
	dest := t.TempDir()
	path := testutil.WriteZip(t, dir, "dup.cbz", []testutil.Entry{
		{Name: "a.png", Data: []byte("first")},
		{Name: "a.png", Data: []byte("second")},
	})

	entries, err := Zip{}.ListEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, entries)

	require.NoError(t, Zip{}.ExtractAll(path, dest))
	got, err := os.ReadFile(filepath.Join(dest, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestZip_ExtractAllUnsupportedMethod(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteZipWithMethod(t, dir, "odd.cbz", testutil.Entry{Name: "a.png", Data: []byte("xyz")}, 99)

	entries, err := Zip{}.ListEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, entries)

	err = Zip{}.ExtractAll(path, t.TempDir())
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestZip_ExtractAllRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "work")
	require.NoError(t, os.Mkdir(dest, 0755))
	path := testutil.WriteZip(t, dir, "slip.cbz", []testutil.Entry{
		{Name: "../evil.png", Data: []byte("evil")},
	})

	err := Zip{}.ExtractAll(path, dest)
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "evil.png"))
	assert.True(t, os.IsNotExist(statErr), "entry must not be written outside dest")
}

func TestZip_ExtractAllDoesNotModifySource(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteZip(t, dir, "issue.cbz", []testutil.Entry{
		{Name: "a.png", Data: []byte("a")},
	})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Zip{}.ExtractAll(path, t.TempDir()))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

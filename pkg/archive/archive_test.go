package archive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/comics/issue1.cbz", "cbz"},
		{"issue.tar.rar", "rar"},
		{"UPPER.CBZ", "CBZ"},
		{"/comics/noext", ""},
		{".cbz", ""},
		{"dir.cbz/file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		backend string
		ok      bool
	}{
		{"a.zip", "zip", true},
		{"a.cbz", "zip", true},
		{"a.rar", "rar", true},
		{"a.cbr", "rar", true},
		{"a.CBZ", "", false},
		{"a.7z", "", false},
		{"a.pdf", "", false},
		{"a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			backend, ok := ForPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, Supported(tt.path))
			if ok {
				assert.Equal(t, tt.backend, backend.Name())
			} else {
				assert.Nil(t, backend)
			}
		})
	}
}

func TestEntryPath(t *testing.T) {
	dest := t.TempDir()

	t.Run("nested entry stays below dest", func(t *testing.T) {
		got, err := entryPath(dest, "ch1/001.png")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "ch1", "001.png"), got)
	})

	t.Run("backslash separators", func(t *testing.T) {
		got, err := entryPath(dest, `ch1\001.png`)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "ch1", "001.png"), got)
	})

	for _, name := range []string{"../evil.png", "/etc/passwd", "a/../../evil.png", ""} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := entryPath(dest, name)
			assert.ErrorIs(t, err, ErrExtractionFailed)
		})
	}
}

func TestNamesDeduplicates(t *testing.T) {
	var n names
	n.add("b.png")
	n.add("a.png")
	n.add("b.png")

	assert.Equal(t, []string{"b.png", "a.png"}, n.list)
}

func TestNamesDeduplicatesSeparatorVariants(t *testing.T) {
	var n names
	n.add(`a\1.png`)
	n.add("a/1.png")
	n.add("a/2.png")

	assert.Equal(t, []string{`a\1.png`, "a/2.png"}, n.list)
}

package services

import (
	"context"
	"image/color"
	"testing"

	"github.com/kerbaras/comics/pkg/providers"
	"github.com/kerbaras/comics/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openComic(t *testing.T, entries []testutil.Entry) *providers.Comic {
	t.Helper()
	path := testutil.WriteZip(t, t.TempDir(), "decode.cbz", entries)
	comic, err := providers.OpenComic(path, providers.Options{TempDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { comic.Close() })
	return comic
}

func mixedEntries(t *testing.T) []testutil.Entry {
	good := testutil.PNG(t, 3, 3, color.White)
	return []testutil.Entry{
		{Name: "01.png", Data: good},
		{Name: "02.png", Data: []byte("not an image")},
		{Name: "03.png", Data: good},
		{Name: "04.png", Data: good[:len(good)/2]},
		{Name: "05.png", Data: good},
	}
}

func TestNewDecoder(t *testing.T) {
	assert.Equal(t, 1, NewDecoder(0).workers)
	assert.Equal(t, 4, NewDecoder(4).workers)
}

func TestDecoder_DecodeAll(t *testing.T) {
	comic := openComic(t, mixedEntries(t))
	decoder := NewDecoder(3)
	defer decoder.Close()

	failures, err := decoder.Decode(context.Background(), comic, nil)
	require.NoError(t, err)

	require.Len(t, failures, 2)
	assert.Equal(t, 1, failures[0].Index)
	assert.Equal(t, "02.png", failures[0].Name)
	assert.ErrorIs(t, failures[0], providers.ErrUnsupportedImageFormat)
	assert.Equal(t, 3, failures[1].Index)
	assert.ErrorIs(t, failures[1], providers.ErrCorruptImageData)

	for _, p := range comic.Pages() {
		assert.True(t, p.Decoded(), "page %d", p.Index())
	}
}

func TestDecoder_DecodeSubset(t *testing.T) {
	comic := openComic(t, mixedEntries(t))
	decoder := NewDecoder(2)
	defer decoder.Close()

	failures, err := decoder.Decode(context.Background(), comic, []int{0, 2, 42, -1})
	require.NoError(t, err)
	assert.Empty(t, failures)

	decoded := []bool{}
	for _, p := range comic.Pages() {
		decoded = append(decoded, p.Decoded())
	}
	assert.Equal(t, []bool{true, false, true, false, false}, decoded)
}

func TestDecoder_Progress(t *testing.T) {
	comic := openComic(t, mixedEntries(t))
	decoder := NewDecoder(2)

	_, err := decoder.Decode(context.Background(), comic, nil)
	require.NoError(t, err)
	decoder.Close()

	var updates []DecodeProgress
	for p := range decoder.Progress() {
		updates = append(updates, p)
	}

	require.Len(t, updates, 5)
	seen := map[int]bool{}
	for _, u := range updates {
		assert.Equal(t, "decode.cbz", u.Comic)
		assert.Equal(t, 5, u.Total)
		seen[u.Done] = true
	}
	for i := 1; i <= 5; i++ {
		assert.True(t, seen[i], "done count %d reported", i)
	}
}

func TestDecoder_Cancelled(t *testing.T) {
	comic := openComic(t, mixedEntries(t))
	decoder := NewDecoder(1)
	defer decoder.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := decoder.Decode(ctx, comic, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecoder_CloseIsIdempotent(t *testing.T) {
	decoder := NewDecoder(1)
	decoder.Close()
	assert.NotPanics(t, decoder.Close)
}

package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Size int64  `json:"fileSize"`
}

func TestCollection_ReadAll_MissingFile(t *testing.T) {
	c := NewCollection[record](filepath.Join(t.TempDir(), "nope.json"))
	records, err := c.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestCollection_ReadAll_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	c := NewCollection[record](path)
	records, err := c.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollection_RoundTrip(t *testing.T) {
	c := NewCollection[record](filepath.Join(t.TempDir(), "images.json"))

	in := []record{{ID: "a", Size: 1}, {ID: "b", Size: 2}}
	require.NoError(t, c.WriteAll(in))

	out, err := c.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// writeAll(readAll()) is a no-op on the visible record set.
	require.NoError(t, c.WriteAll(out))
	again, err := c.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestCollection_WriteAll_NilBecomesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	c := NewCollection[record](path)
	require.NoError(t, c.WriteAll(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestAccountant_UsedBytes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), bytes.Repeat([]byte{1}, 40), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), bytes.Repeat([]byte{2}, 60), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", "v.mp4"), bytes.Repeat([]byte{3}, 500), 0o644))

	a := NewAccountant(dir, 1000)
	assert.Equal(t, int64(100), a.UsedBytes())
	assert.Equal(t, int64(900), a.Available())
}

func TestAccountant_UsedBytes_MissingDir(t *testing.T) {
	a := NewAccountant(filepath.Join(t.TempDir(), "absent"), 1000)
	assert.Equal(t, int64(0), a.UsedBytes())
}

func TestAccountant_Info(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), bytes.Repeat([]byte{1}, 250), 0o644))

	info := NewAccountant(dir, 1000).Info()
	assert.Equal(t, int64(250), info.Used)
	assert.Equal(t, int64(1000), info.Limit)
	assert.Equal(t, int64(750), info.Available)
	assert.InDelta(t, 25.0, info.UsedPercentage, 0.001)
}

func makeFileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File[field][0]
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	fh := makeFileHeader(t, "images", "wand.png", []byte("sparkle"))

	storedName, size, err := SaveFile(fh, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)
	assert.Equal(t, ".png", filepath.Ext(storedName))
	assert.NotEqual(t, "wand.png", storedName)

	f, err := os.Open(filepath.Join(dir, storedName))
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "sparkle", string(data))
}

func TestSaveFile_CollidingNamesGetDistinctStoredNames(t *testing.T) {
	dir := t.TempDir()
	a, _, err := SaveFile(makeFileHeader(t, "images", "same.jpg", []byte("one")), dir)
	require.NoError(t, err)
	b, _, err := SaveFile(makeFileHeader(t, "images", "same.jpg", []byte("two")), dir)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRemoveStored_MissingFileTolerated(t *testing.T) {
	assert.NoError(t, RemoveStored(t.TempDir(), "ghost.jpg"))
}

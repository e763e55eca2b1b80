package videos

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gallery/internal/storage"
)

type testFile struct {
	name     string
	mimeType string
	content  []byte
}

func makeBatch(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="videos"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.mimeType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/videos/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["videos"]
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewCollection[Video](filepath.Join(t.TempDir(), "videos.json"))
	return NewService(store, dir, 50, zap.NewNop()), dir
}

func diskFileCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestUploadBatch_Success(t *testing.T) {
	svc, dir := newTestService(t)

	uploaded, rejections, err := svc.UploadBatch(makeBatch(t,
		testFile{"clip.mp4", "video/mp4", []byte("mp4data")},
		testFile{"clip.webm", "video/webm", []byte("webmdata")},
	))
	require.NoError(t, err)
	assert.Empty(t, rejections)
	require.Len(t, uploaded, 2)
	assert.Equal(t, 2, diskFileCount(t, dir))
	assert.Equal(t, "/uploads/videos/"+uploaded[0].StoredName, uploaded[0].URL)
}

func TestUploadBatch_FailingFileDoesNotAbortSiblings(t *testing.T) {
	svc, dir := newTestService(t)

	uploaded, rejections, err := svc.UploadBatch(makeBatch(t,
		testFile{"good.mp4", "video/mp4", []byte("ok")},
		testFile{"bad.avi", "video/avi", []byte("nope")},
		testFile{"huge.mp4", "video/mp4", bytes.Repeat([]byte{1}, 51)},
	))
	require.NoError(t, err)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "good.mp4", uploaded[0].FileName)
	assert.Len(t, rejections, 2)
	assert.Contains(t, rejections[0], "bad.avi")
	assert.Contains(t, rejections[1], "huge.mp4")
	assert.Equal(t, 1, diskFileCount(t, dir))
}

func TestUploadBatch_AllFilesRejected(t *testing.T) {
	svc, dir := newTestService(t)

	uploaded, rejections, err := svc.UploadBatch(makeBatch(t,
		testFile{"a.mov", "video/quicktime", []byte("x")},
	))
	require.Error(t, err)
	assert.Empty(t, uploaded)
	assert.Len(t, rejections, 1)
	assert.Equal(t, 0, diskFileCount(t, dir))
}

func TestUploadBatch_EmptyBatch(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.UploadBatch(nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestList_Ordering(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewCollection[Video](filepath.Join(t.TempDir(), "videos.json"))
	svc := NewService(store, dir, 50, zap.NewNop())

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.WriteAll([]Video{
		{ID: "second", UploadedAt: base.Add(time.Minute)},
		{ID: "third", UploadedAt: base.Add(2 * time.Minute)},
		{ID: "first", UploadedAt: base},
	}))

	records, err := svc.List("asc")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].ID)
	assert.Equal(t, "second", records[1].ID)
	assert.Equal(t, "third", records[2].ID)

	records, err = svc.List("desc")
	require.NoError(t, err)
	assert.Equal(t, "third", records[0].ID)
}

func TestDelete(t *testing.T) {
	svc, dir := newTestService(t)

	uploaded, _, err := svc.UploadBatch(makeBatch(t, testFile{"clip.mp4", "video/mp4", []byte("data")}))
	require.NoError(t, err)
	id := uploaded[0].ID

	require.NoError(t, svc.Delete(id))
	assert.Equal(t, 0, diskFileCount(t, dir))

	assert.ErrorIs(t, svc.Delete(id), ErrNotFound)
}

func TestDelete_MissingBackingFileTolerated(t *testing.T) {
	svc, dir := newTestService(t)

	uploaded, _, err := svc.UploadBatch(makeBatch(t, testFile{"clip.mp4", "video/mp4", []byte("data")}))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, uploaded[0].StoredName)))

	assert.NoError(t, svc.Delete(uploaded[0].ID))
}

package storage

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(16 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestImageStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewImageStore(dir, "/uploads/")
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := s.Save(fileHeader(t, "Trophy.PNG", pngBytes(t)), "achievements")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/achievements/1700000000000-"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	onDisk := filepath.Join(dir, "achievements", filepath.Base(url))
	_, err = os.Stat(onDisk)
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(url), "second remove is a no-op")
}

func TestImageStore_ExtensionFromContent(t *testing.T) {
	s := NewImageStore(t.TempDir(), "/uploads")
	url, err := s.Save(fileHeader(t, "noext", pngBytes(t)), "achievements")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
}

func TestImageStore_Rejects(t *testing.T) {
	s := NewImageStore(t.TempDir(), "/uploads")

	_, err := s.Save(fileHeader(t, "notes.png", []byte("plain text, not an image")), "achievements")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = s.Save(fileHeader(t, "empty.png", nil), "achievements")
	assert.ErrorIs(t, err, ErrEmptyFile)

	big := append(pngBytes(t), bytes.Repeat([]byte{0}, MaxImageSize)...)
	_, err = s.Save(fileHeader(t, "big.png", big), "achievements")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestImageStore_RemoveIgnoresForeignPaths(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	s := NewImageStore(dir, "/uploads")
	assert.NoError(t, s.Remove("/elsewhere/keep.txt"))
	assert.NoError(t, s.Remove("/uploads/../../keep.txt"))
	assert.NoError(t, s.Remove(""))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

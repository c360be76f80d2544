package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MaxImageSize = 5 * 1024 * 1024 // 5 MB

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrNotImage     = errors.New("only image files are allowed")
)

// ImageStore keeps uploaded images on local disk under baseDir and
// hands out URLs rooted at urlBase, which the router serves statically.
type ImageStore struct {
	baseDir string
	urlBase string
	now     func() time.Time
}

func NewImageStore(baseDir, urlBase string) *ImageStore {
	return &ImageStore{
		baseDir: baseDir,
		urlBase: strings.TrimSuffix(urlBase, "/"),
		now:     time.Now,
	}
}

// Save sniffs fh, writes it under dir and returns its public URL.
func (s *ImageStore) Save(fh *multipart.FileHeader, dir string) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxImageSize {
		return "", ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("detect mime type: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = mt.Extension()
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)

	absDir := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	absPath := filepath.Join(absDir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("close file: %w", err)
	}

	return path.Join(s.urlBase, filepath.ToSlash(dir), name), nil
}

// Remove deletes the file behind url. URLs outside the store are ignored,
// as are files that are already gone.
func (s *ImageStore) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.urlBase+"/")
	if !ok || rel == "" {
		return nil
	}

	abs := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	within, err := filepath.Rel(s.baseDir, abs)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return nil
	}

	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", url, err)
	}
	return nil
}

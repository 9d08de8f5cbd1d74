package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/msomdec/cyber-thread/internal/domain"
)

// DefaultMaxUploadBytes caps an uploaded image at 10MB.
const DefaultMaxUploadBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaService spools uploaded images to a local temp file and forwards
// them to the external media host.
type MediaService struct {
	uploader domain.MediaUploader
	tempDir  string
	maxBytes int64
}

// NewMediaService creates a new MediaService. An empty tempDir uses the
// OS default; maxBytes <= 0 uses DefaultMaxUploadBytes.
func NewMediaService(uploader domain.MediaUploader, tempDir string, maxBytes int64) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &MediaService{uploader: uploader, tempDir: tempDir, maxBytes: maxBytes}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadFile copies src to a temp file, checks its size and type, uploads
// it into folder, and returns the public URL. The temp file is removed
// before returning on every path.
func (s *MediaService) UploadFile(ctx context.Context, src io.Reader, filename, folder string) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("remove upload temp file", "path", tmp.Name(), "error", err)
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: uploaded file is empty", domain.ErrInvalidInput)
	}
	if n > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d byte limit", domain.ErrInvalidInput, s.maxBytes)
	}

	contentType, err := sniffContentType(tmp)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("%w: only JPEG, PNG, GIF, and WebP images are accepted", domain.ErrInvalidInput)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}

	url, err := s.uploader.Upload(ctx, tmp, name, folder)
	if err != nil {
		if !errors.Is(err, domain.ErrUpload) {
			err = fmt.Errorf("%w: %w", domain.ErrUpload, err)
		}
		return "", err
	}

	return url, nil
}

// sniffContentType detects the type from the first 512 bytes
// (more reliable than the multipart header).
func sniffContentType(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

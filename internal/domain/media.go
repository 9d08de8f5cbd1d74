package domain

import (
	"context"
	"io"
)

// MediaUploader sends file bytes to an external host and returns the
// public URL the bytes are served from. Implementations wrap ErrUpload for
// transport and remote-service failures.
type MediaUploader interface {
	Upload(ctx context.Context, body io.Reader, filename, folder string) (string, error)
}

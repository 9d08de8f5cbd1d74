// Package imagekit uploads files to the ImageKit media host.
package imagekit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ik "github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"

	"github.com/msomdec/cyber-thread/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Config holds the process-wide ImageKit credentials.
type Config struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
	Timeout     time.Duration
}

// fileUploader is the part of the ImageKit SDK the client calls.
type fileUploader interface {
	Upload(ctx context.Context, file interface{}, param uploader.UploadParam) (*uploader.UploadResponse, error)
}

// Client implements domain.MediaUploader with the ImageKit SDK.
type Client struct {
	uploads     fileUploader
	urlEndpoint string
	timeout     time.Duration
}

// New validates the credentials and returns a ready Client.
func New(cfg Config) (*Client, error) {
	var errs []error
	if strings.TrimSpace(cfg.PublicKey) == "" {
		errs = append(errs, errors.New("imagekit: public key is required"))
	}
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		errs = append(errs, errors.New("imagekit: private key is required"))
	}
	if strings.TrimSpace(cfg.URLEndpoint) == "" {
		errs = append(errs, errors.New("imagekit: url endpoint is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	sdk := ik.NewFromParams(ik.NewParams{
		PublicKey:   cfg.PublicKey,
		PrivateKey:  cfg.PrivateKey,
		UrlEndpoint: cfg.URLEndpoint,
	})
	return newClient(sdk.Uploader, cfg.URLEndpoint, cfg.Timeout), nil
}

func newClient(uploads fileUploader, urlEndpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		uploads:     uploads,
		urlEndpoint: strings.TrimRight(urlEndpoint, "/"),
		timeout:     timeout,
	}
}

// Upload streams body to ImageKit under folder and returns the public URL.
func (c *Client) Upload(ctx context.Context, body io.Reader, filename, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	unique := true
	resp, err := c.uploads.Upload(ctx, body, uploader.UploadParam{
		FileName:          filename,
		Folder:            folder,
		UseUniqueFileName: &unique,
	})
	if err != nil {
		return "", fmt.Errorf("%w: imagekit: %w", domain.ErrUpload, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: imagekit returned no response", domain.ErrUpload)
	}

	if resp.Data.Url != "" {
		return resp.Data.Url, nil
	}
	if resp.Data.FilePath != "" {
		return c.urlEndpoint + "/" + strings.TrimLeft(resp.Data.FilePath, "/"), nil
	}
	return "", fmt.Errorf("%w: imagekit response has no url", domain.ErrUpload)
}

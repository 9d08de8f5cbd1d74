// Package s3store uploads files to an S3-compatible bucket.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/msomdec/cyber-thread/internal/domain"
)

// Config describes the target bucket. Access keys are optional; when both
// are empty the default AWS credential chain is used.
type Config struct {
	Bucket          string
	Region          string
	PublicBaseURL   string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	// Timeout bounds each PutObject call. Zero means 30s.
	Timeout time.Duration
}

const defaultTimeout = 30 * time.Second

// ObjectPutter is the part of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader implements domain.MediaUploader with S3 PutObject.
type Uploader struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	newID   func() string
	timeout time.Duration
}

// New loads the AWS configuration and builds an S3 client for cfg.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	var errs []error
	if cfg.Bucket == "" {
		errs = append(errs, errors.New("s3: bucket is required"))
	}
	if cfg.Region == "" {
		errs = append(errs, errors.New("s3: region is required"))
	}
	if cfg.PublicBaseURL == "" {
		errs = append(errs, errors.New("s3: public base url is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	u := NewWithClient(client, cfg.Bucket, cfg.PublicBaseURL)
	if cfg.Timeout > 0 {
		u.timeout = cfg.Timeout
	}
	return u, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client ObjectPutter, bucket, publicBaseURL string) *Uploader {
	return &Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		newID:   uuid.NewString,
		timeout: defaultTimeout,
	}
}

// Upload stores body under folder and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, body io.Reader, filename, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	key := ObjectKey(folder, u.newID(), filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: put object %s: %w", domain.ErrUpload, key, err)
	}

	return u.baseURL + "/" + key, nil
}

// ObjectKey builds the bucket key folder/id-filename with no leading slash.
func ObjectKey(folder, id, filename string) string {
	name := id + "-" + path.Base(filepath.ToSlash(filename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

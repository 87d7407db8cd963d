// Package imagehost uploads movie images to an S3-compatible image host and
// builds their public URLs.
package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/h2non/bimg"
	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/config"
)

const DefaultMaxBytes = 10 << 20

// ObjectStore is the subset of the S3 API the client uses.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ ObjectStore = (*s3.Client)(nil)

// Asset identifies an uploaded image.
type Asset struct {
	PublicID  string
	SecureURL string
}

// Inspector returns the image type name of data ("jpeg", "png", ...).
type Inspector func(data []byte) (string, error)

type Client struct {
	store      ObjectStore
	bucket     string
	folder     string
	publicURL  string
	localDir   string
	maxBytes   int64
	httpClient *http.Client
	inspect    Inspector
	observe    func(error)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithInspector(fn Inspector) Option {
	return func(c *Client) { c.inspect = fn }
}

func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// WithUploadObserver is called once per upload attempt with its result.
func WithUploadObserver(fn func(error)) Option {
	return func(c *Client) { c.observe = fn }
}

// New creates a client that stores every image under cfg.Folder.
func New(store ObjectStore, cfg config.ImageHostConfig, opts ...Option) *Client {
	c := &Client{
		store:      store,
		bucket:     cfg.Bucket,
		folder:     strings.Trim(cfg.Folder, "/"),
		publicURL:  cfg.PublicURL,
		localDir:   cfg.LocalDir,
		maxBytes:   DefaultMaxBytes,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		inspect:    InspectImage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload reads src, checks that it is a supported image and stores it.
// Failures from the store are returned as internal errors.
func (c *Client) Upload(ctx context.Context, src Source) (*Asset, error) {
	asset, err := c.upload(ctx, src)
	if c.observe != nil {
		c.observe(err)
	}
	return asset, err
}

func (c *Client) upload(ctx context.Context, src Source) (*Asset, error) {
	if src == nil {
		return nil, apperrors.ErrImageMissing
	}

	rc, err := src.open(ctx, c)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, c.maxBytes+1))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("read image %s: %w", src, err))
	}
	if len(data) == 0 {
		return nil, apperrors.ClientInput("Image is empty")
	}
	if int64(len(data)) > c.maxBytes {
		return nil, apperrors.ClientInput(fmt.Sprintf("Image is too large (max %dMB)", c.maxBytes>>20))
	}

	kind, err := c.inspect(data)
	if err != nil {
		return nil, err
	}

	key := c.key(kind)
	_, err = c.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + kind),
	})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("upload image %s: %w", src, err))
	}

	return &Asset{PublicID: key, SecureURL: c.URL(key)}, nil
}

// Delete removes an uploaded image. An empty id is a no-op.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := c.store.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return apperrors.Internal(fmt.Errorf("delete image %s: %w", publicID, err))
	}
	return nil
}

// URL returns the public URL of key. The public URL setting is either a
// fmt pattern with one %s or a base URL.
func (c *Client) URL(key string) string {
	switch {
	case c.publicURL == "":
		return key
	case strings.Contains(c.publicURL, "%s"):
		return CleanURL(fmt.Sprintf(c.publicURL, key))
	default:
		return CleanURL(strings.TrimRight(c.publicURL, "/") + "/" + key)
	}
}

func (c *Client) key(kind string) string {
	ext := kind
	if ext == "jpeg" {
		ext = "jpg"
	}
	name := uuid.NewString() + "." + ext
	if c.folder == "" {
		return name
	}
	return c.folder + "/" + name
}

var supportedTypes = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
	"tiff": true,
	"heif": true,
	"avif": true,
}

// InspectImage detects the image type with libvips' magic number checks.
func InspectImage(data []byte) (string, error) {
	kind := bimg.DetermineImageTypeName(data)
	if !supportedTypes[kind] {
		return "", apperrors.ClientInput("Unsupported image format")
	}
	return kind, nil
}

func CleanURL(urlStr string) string {
	urlStr = strings.ReplaceAll(urlStr, " ", "%20")
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	return parsedURL.String()
}

package imagehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
)

// Source is where an image comes from. It is one of PathSource,
// RemoteURLSource or UploadedFile.
type Source interface {
	fmt.Stringer
	open(ctx context.Context, c *Client) (io.ReadCloser, error)
}

// PathSource is a file below the client's local image directory.
type PathSource string

// RemoteURLSource is an http(s) URL fetched by the client.
type RemoteURLSource string

// UploadedFile is a multipart file part.
type UploadedFile struct {
	Header *multipart.FileHeader
}

var (
	_ Source = PathSource("")
	_ Source = RemoteURLSource("")
	_ Source = UploadedFile{}
)

// ParseSource classifies a string image reference. Empty input yields nil.
func ParseSource(ref string) Source {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return RemoteURLSource(ref)
	default:
		return PathSource(ref)
	}
}

// SourceFromRequest resolves the image of a movie request: the multipart
// "image" file part wins, then the string reference. It returns nil when
// the request carries no image.
func SourceFromRequest(r *http.Request, ref string) Source {
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			return UploadedFile{Header: files[0]}
		}
	}
	return ParseSource(ref)
}

func (p PathSource) String() string { return "path:" + string(p) }

func (p PathSource) open(_ context.Context, c *Client) (io.ReadCloser, error) {
	root, err := filepath.Abs(c.localDir)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	target := string(p)
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, apperrors.ClientInput("Invalid image path")
	}

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ClientInput("Image file not found")
		}
		return nil, apperrors.Internal(err)
	}
	return f, nil
}

func (u RemoteURLSource) String() string { return "url:" + string(u) }

func (u RemoteURLSource) open(ctx context.Context, c *Client) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(u), nil)
	if err != nil {
		return nil, apperrors.ClientInput("Invalid image URL")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("fetch image: %w", err))
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, apperrors.ClientInput(fmt.Sprintf("Could not fetch image URL (status %d)", res.StatusCode))
	}
	return res.Body, nil
}

func (f UploadedFile) String() string {
	if f.Header == nil {
		return "file:"
	}
	return "file:" + f.Header.Filename
}

func (f UploadedFile) open(_ context.Context, _ *Client) (io.ReadCloser, error) {
	if f.Header == nil {
		return nil, apperrors.ErrImageMissing
	}
	file, err := f.Header.Open()
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("open uploaded file: %w", err))
	}
	return file, nil
}

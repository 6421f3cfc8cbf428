// Package storage handles uploaded complaint/response images: saving
// multipart uploads under opaque paths, resolving those paths to public
// URLs, and fetching image bytes back for report rendering.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"coolcare/config"
)

// SaveUpload writes a multipart file into the upload directory under a
// generated opaque name and returns the stored path (relative, as kept
// in the database).
func SaveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	dst := filepath.Join(config.AppConfig.UploadDir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	return name, nil
}

// ResolveURL turns an opaque stored path into a publicly fetchable URL by
// prefixing the configured storage base.
func ResolveURL(path string) string {
	base := config.AppConfig.StorageBaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(path, "/")
}

// Fetcher retrieves raw bytes for a URL.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// HTTPFetcher fetches image bytes over plain HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 15 * time.Second}}
}

// Fetch downloads the URL and returns its body. Non-2xx responses are errors.
func (f *HTTPFetcher) Fetch(url string) ([]byte, error) {
	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

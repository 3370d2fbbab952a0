package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
)

// DefaultDownloadTimeout bounds a single file download.
const DefaultDownloadTimeout = 300 * time.Second

// File is a downloaded upload.
type File struct {
	Name string
	Ext  string
	Data []byte
}

// Downloader fetches uploaded files by URL.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a Downloader with the given timeout; zero means
// DefaultDownloadTimeout.
func NewDownloader(timeout time.Duration) *Downloader {
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads rawURL. Unreachable or malformed URLs are validation
// errors; a non-2xx answer is a 502 AppError.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) (*File, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: Error downloading file: invalid url %q", apperrors.ErrValidation, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: Error downloading file: %v", apperrors.ErrValidation, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: Error downloading file: %v", apperrors.ErrValidation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewAppError(http.StatusBadGateway,
			"Error downloading file", fmt.Errorf("%s answered %d", u.Redacted(), resp.StatusCode))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download of %s: %w", u.Redacted(), err)
	}

	name := path.Base(u.Path)
	return &File{Name: name, Ext: Extension(name), Data: data}, nil
}

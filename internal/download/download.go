// Package download streams generated media from result URLs to a local sink.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/maauso/kling-go/internal/apierr"
)

// DefaultChunkSize is the copy buffer size used while streaming.
const DefaultChunkSize = 8192

// ErrURLRequired is returned when no URL is provided.
var ErrURLRequired = errors.New("download: url is required")

// Downloader fetches artifact URLs. Result URLs are pre-signed CDN links, so
// no Authorization header is sent.
type Downloader struct {
	httpClient *http.Client
	chunkSize  int
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithChunkSize sets the copy buffer size. Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.chunkSize = n
		}
	}
}

// New creates a Downloader. A nil client uses http.DefaultClient.
func New(hc *http.Client, opts ...Option) *Downloader {
	if hc == nil {
		hc = http.DefaultClient
	}
	d := &Downloader{httpClient: hc, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download streams url into w and returns the number of bytes written.
// Every failure is a *apierr.DownloadError.
func (d *Downloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	if url == "" {
		return 0, &apierr.DownloadError{URL: url, Err: ErrURLRequired}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &apierr.DownloadError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, &apierr.DownloadError{URL: url, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &apierr.DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	buf := make([]byte, d.chunkSize)
	var written int64
	for {
		nr, rerr := resp.Body.Read(buf)
		if nr > 0 {
			nw, werr := w.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, &apierr.DownloadError{URL: url, Err: fmt.Errorf("write chunk: %w", werr)}
			}
			if nw != nr {
				return written, &apierr.DownloadError{URL: url, Err: fmt.Errorf("write chunk: %w", io.ErrShortWrite)}
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, &apierr.DownloadError{URL: url, Err: fmt.Errorf("read chunk: %w", rerr)}
		}
	}
}

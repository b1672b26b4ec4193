// Package fetch is the HTTP transport behind the download operation.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
)

// Fetcher opens a streamed response body for a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher issues plain GET requests.
type HTTPFetcher struct {
	client *http.Client
}

// New returns an HTTPFetcher. A zero timeout means no timeout.
func New(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Get returns the body of a successful response. The caller closes it.
// Request failures carry ErrDownloadTransport and non-2xx answers carry ErrDownloadStatus.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	logger := logging.GetLogger("fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownloadTransport, "invalid request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownloadTransport, "request to %s failed", url)
	}

	logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, errors.New(errors.ErrDownloadStatus, fmt.Sprintf("unexpected status %s from %s", resp.Status, url)).
			WithDetail("status", resp.StatusCode).
			WithDetail("url", url)
	}

	return resp.Body, nil
}

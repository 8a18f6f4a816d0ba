package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/ldblocks"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements ldblocks.PageFetcher at compile time.
var _ ldblocks.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered pages over HTTP so their head can be
// injected.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes caps the page size. Defaults to DefaultMaxBodyBytes.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Pages larger than the configured limit
// are rejected with EINVALID.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ldblocks.Errorf(ldblocks.EINVALID, "invalid page URL: %v", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ldblocks.Errorf(ldblocks.ENOTFOUND, "page %s not found", url)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", ldblocks.Errorf(ldblocks.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", ldblocks.Errorf(ldblocks.EINVALID, "page %s exceeds %d bytes", url, f.maxBytes)
	}

	return string(body), nil
}

package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ldblocks"
)

// Ensure RetryFetcher implements ldblocks.PageFetcher at compile time.
var _ ldblocks.PageFetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries failed fetches with backoff. Application errors
// other than EINTERNAL, such as a missing page, are returned at once.
type RetryFetcher struct {
	next   ldblocks.PageFetcher
	logger *slog.Logger

	// Delays holds the wait before each retry. Its length is the
	// maximum number of retries.
	Delays []time.Duration
}

// NewRetryFetcher wraps next with DefaultRetryDelays.
func NewRetryFetcher(next ldblocks.PageFetcher, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{
		next:   next,
		logger: logger,
		Delays: DefaultRetryDelays(),
	}
}

// Fetch retrieves url, retrying transient failures.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.Delays); attempt++ {
		page, err := f.next.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		if ldblocks.ErrorCode(err) != ldblocks.EINTERNAL {
			return "", err
		}
		lastErr = err

		if attempt == len(f.Delays) {
			break
		}

		f.logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.Delays[attempt]):
		}
	}

	return "", lastErr
}

package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/ldblocks"
	ldhttp "github.com/fwojciec/ldblocks/http"
	"github.com/fwojciec/ldblocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetryFetcher(next ldblocks.PageFetcher) *ldhttp.RetryFetcher {
	f := ldhttp.NewRetryFetcher(next, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.Delays = []time.Duration{time.Millisecond, time.Millisecond}
	return f
}

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.PageFetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				if attempts < 3 {
					return "", errors.New("connection reset")
				}
				return "<html>", nil
			},
		}

		page, err := newRetryFetcher(next).Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "<html>", page)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.PageFetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				return "", errors.New("connection reset")
			},
		}

		_, err := newRetryFetcher(next).Fetch(context.Background(), "https://example.com")

		assert.EqualError(t, err, "connection reset")
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry application errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.PageFetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				return "", ldblocks.Errorf(ldblocks.ENOTFOUND, "page not found")
			},
		}

		_, err := newRetryFetcher(next).Fetch(context.Background(), "https://example.com")

		assert.Equal(t, ldblocks.ENOTFOUND, ldblocks.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		next := &mock.PageFetcher{
			FetchFn: func(context.Context, string) (string, error) {
				cancel()
				return "", errors.New("connection reset")
			},
		}
		f := newRetryFetcher(next)
		f.Delays = []time.Duration{time.Hour}

		_, err := f.Fetch(ctx, "https://example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

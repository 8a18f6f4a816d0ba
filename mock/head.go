package mock

import (
	"context"

	"github.com/fwojciec/ldblocks"
)

// Compile-time interface verification.
var (
	_ ldblocks.HeadInjector = (*HeadInjector)(nil)
	_ ldblocks.PageFetcher  = (*PageFetcher)(nil)
)

// HeadInjector is a mock implementation of ldblocks.HeadInjector.
type HeadInjector struct {
	InjectFn func(page string, head ldblocks.HeadContent) (string, error)
}

func (i *HeadInjector) Inject(page string, head ldblocks.HeadContent) (string, error) {
	return i.InjectFn(page, head)
}

// PageFetcher is a mock implementation of ldblocks.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

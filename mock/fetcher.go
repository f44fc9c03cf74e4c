package mock

import (
	"context"

	"github.com/fwojciec/webwalk"
)

var _ webwalk.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webwalk.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) webwalk.FetchResult
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) webwalk.FetchResult {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webwalk"
	"github.com/fwojciec/webwalk/crawl"
)

// Ensure LoggingFetcher implements webwalk.Fetcher.
var _ webwalk.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with a debug trace per fetch. Failed
// fetches surface here only as zero-byte results; per the Fetcher
// contract there is no error to log.
type LoggingFetcher struct {
	next   webwalk.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webwalk.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) webwalk.FetchResult {
	begin := time.Now()
	result := f.next.Fetch(ctx, url)
	f.logger.Debug("fetch",
		"url", crawl.TruncateURL(url, 120),
		"bytes", len(result.Body),
		"duration", time.Since(begin),
	)
	return result
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

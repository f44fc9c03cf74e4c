// Package http provides the HTTP implementation of webwalk.Fetcher.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/webwalk"
)

// DefaultFetchTimeout bounds a single page retrieval.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxConnsPerHost caps connections to a single host, independently
// of the crawler's concurrency limit. Fetches beyond the cap queue inside
// the transport while still counting as in flight upstream; the two
// limits are deliberately uncoordinated.
const DefaultMaxConnsPerHost = 8

// Ensure Fetcher implements webwalk.Fetcher at compile time.
var _ webwalk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies over HTTP. It honors the webwalk.Fetcher
// contract: it never reports an error. Transport failures and responses
// whose media type is not text/html yield an empty body, which the
// crawler treats as a page with no links.
type Fetcher struct {
	client          *http.Client
	timeout         time.Duration
	maxConnsPerHost int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxConnsPerHost sets the per-host connection cap.
// Defaults to DefaultMaxConnsPerHost (8) if not specified.
func WithMaxConnsPerHost(n int) Option {
	return func(f *Fetcher) {
		f.maxConnsPerHost = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:         DefaultFetchTimeout,
		maxConnsPerHost: DefaultMaxConnsPerHost,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		Transport: &http.Transport{
			MaxConnsPerHost: f.maxConnsPerHost,
		},
	}

	return f
}

// Fetch retrieves the body of the given URL. The status code is not
// checked: like a browser, the crawler reads whatever HTML the server
// returns, error pages included. Only the declared media type gates the
// body, and it must be exactly text/html with parameters stripped.
func (f *Fetcher) Fetch(ctx context.Context, url string) webwalk.FetchResult {
	result := webwalk.FetchResult{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return result
	}
	defer resp.Body.Close()

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "text/html" {
		return result
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result
	}

	result.Body = string(body)
	return result
}

// Close releases idle connections held by the transport.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

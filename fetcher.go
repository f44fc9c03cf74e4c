package webwalk

import "context"

// FetchResult is the outcome of retrieving a single URL. Body is empty
// when the transport failed or the response was not text/html; such
// results are indistinguishable from a successfully fetched page with no
// links.
type FetchResult struct {
	URL  string
	Body string
}

// Fetcher retrieves page bodies from URLs.
// Fetch never fails: transport errors and non-HTML responses degrade to an
// empty body so every dispatched URL completes the same way. There is no
// retry; a URL that fails once is done.
type Fetcher interface {
	// Fetch performs one retrieval of the URL.
	// The context controls timeout and cancellation of the transport.
	Fetch(ctx context.Context, url string) FetchResult

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

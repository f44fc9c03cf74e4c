package webwalk

import "context"

// Frontier tracks the lifecycle of every URL observed during a crawl.
// Each URL occupies at most one of three partitions: queued, in flight, or
// done. A URL enters queued on first submission, moves to in flight when
// acquired for dispatch, and to done when its fetch completes. Done is
// terminal; no URL is ever re-queued.
//
// URLs are opaque string identities. No normalization is applied: two
// strings differing by fragment, trailing slash, or scheme case are
// distinct URLs.
type Frontier interface {
	// Submit adds a URL to the queue.
	// Returns false if the URL has already been seen; the first
	// submission wins and later ones are no-ops.
	Submit(url string) bool

	// HasPending returns true if at least one URL is queued.
	HasPending() bool

	// Acquire removes and returns the oldest queued URL, moving it to the
	// in-flight partition. Dequeue order is FIFO by submission time.
	// Returns ENOTFOUND if the queue is empty; callers must guard with
	// HasPending.
	Acquire() (string, error)

	// Complete moves an in-flight URL to done.
	// Returns ECONFLICT if the URL is not currently in flight.
	Complete(url string) error

	// Len returns the number of queued URLs.
	Len() int

	// Seen returns true if the URL has been submitted before, regardless
	// of its current partition.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

package crawl

import (
	"sync"

	"github.com/fwojciec/webwalk"
	"github.com/fwojciec/webwalk/bloom"
)

// Compile-time interface verification.
var _ webwalk.Frontier = (*Frontier)(nil)

// urlState is the partition a known URL currently occupies.
type urlState int

const (
	stateQueued urlState = iota
	stateInFlight
	stateDone
)

// Frontier is an in-memory URL frontier with FIFO ordering and exact
// string-identity deduplication. A Bloom filter fronts the state map so a
// never-seen URL, the common case during a growing crawl, is admitted
// after a single filter probe; positive probes fall through to the exact
// map, so a false positive never drops a URL.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu     sync.Mutex
	filter *bloom.Filter
	states map[string]urlState
	queue  []string
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// Bloom false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		filter: bloom.NewFilter(n, fpRate),
		states: make(map[string]urlState),
	}
}

// Submit adds a URL to the queue. Returns false if the URL has already
// been seen; the first submission wins whether the URL is queued, in
// flight, or done. URLs are compared as raw strings: fragments, trailing
// slashes, and scheme case all distinguish.
func (f *Frontier) Submit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.filter.Test(url) {
		// Possibly seen before; the map has the exact answer.
		if _, ok := f.states[url]; ok {
			return false
		}
	}
	f.filter.Add(url)
	f.states[url] = stateQueued
	f.queue = append(f.queue, url)
	return true
}

// HasPending returns true if at least one URL is queued.
func (f *Frontier) HasPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) > 0
}

// Acquire removes and returns the oldest queued URL and marks it in
// flight. Returns ENOTFOUND if the queue is empty.
func (f *Frontier) Acquire() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", webwalk.Errorf(webwalk.ENOTFOUND, "acquire on empty frontier")
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	f.states[url] = stateInFlight
	return url, nil
}

// Complete marks an in-flight URL as done. Done is terminal: completing a
// URL twice, or one that was never acquired, returns ECONFLICT.
func (f *Frontier) Complete(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.states[url]
	if !ok || state != stateInFlight {
		return webwalk.Errorf(webwalk.ECONFLICT, "complete %q: not in flight", url)
	}
	f.states[url] = stateDone
	return nil
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has ever been submitted.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.filter.Test(url) {
		return false
	}
	_, ok := f.states[url]
	return ok
}

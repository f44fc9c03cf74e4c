// Package crawl provides the crawl scheduling loop and the in-memory URL
// frontier that drives it. The Crawler dispatches concurrent fetches up to
// a concurrency cap and a total request budget, feeds extracted links back
// into the frontier, and reports each completed page as it finishes.
package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webwalk"
)

// Frontier sizing defaults.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for the Bloom prefilter.
	frontierFalsePositiveRate = 0.01
)

// Default admission limits, used when the corresponding Crawler field is
// zero or negative.
const (
	DefaultConcurrency   = 20
	DefaultRequestBudget = 10000
)

// TerminationReason records why a crawl loop stopped.
type TerminationReason int

const (
	// ReasonExhausted means the queue drained with budget remaining.
	ReasonExhausted TerminationReason = iota
	// ReasonBudget means the request budget was spent with URLs still queued.
	ReasonBudget
)

// Result holds the outcome of a crawl run.
type Result struct {
	Crawled        int // pages dispatched and completed
	EmptyPages     int // fetches that degraded to an empty body
	DuplicatePages int // pages whose body matched an earlier page byte for byte
	Bytes          int // total bytes of non-empty bodies
	RequestBudget  int // the effective budget for the run
	Reason         TerminationReason
}

// Banner returns the termination banner for the run.
func (r *Result) Banner() string {
	if r.Reason == ReasonBudget {
		return fmt.Sprintf("Reached limit of %d requests", r.RequestBudget)
	}
	return "Ran out of links to follow."
}

// Crawler drives a breadth-first crawl from a seed URL.
//
// Fetches run as independent goroutines, but the Run loop is the sole
// caller of Frontier operations: fetch goroutines only deliver results
// over a channel and never touch frontier state. The frontier
// implementation locks anyway, so this discipline is about ordering, not
// memory safety.
type Crawler struct {
	Fetcher   webwalk.Fetcher
	Extractor webwalk.LinkExtractor

	// Frontier overrides the default in-memory frontier. Useful for
	// wrapping with logging decorators.
	Frontier webwalk.Frontier

	// Limiter, if set, throttles fetches per host. The wait happens
	// inside the fetch goroutine, so a throttled URL occupies an
	// in-flight slot while it waits.
	Limiter webwalk.DomainLimiter

	// Concurrency caps simultaneous in-flight fetches.
	Concurrency int

	// RequestBudget caps total fetches ever dispatched across the run.
	RequestBudget int
}

// Run crawls from seedURL until the frontier drains or the request budget
// is spent. The report callback, if non-nil, receives one PageReport per
// completed page in completion order.
//
// An error return means a frontier invariant was broken, which is a bug in
// the caller or the frontier implementation, never a consequence of
// network conditions. Failed fetches are absorbed by the Fetcher contract
// and count as completed pages with no links.
func (c *Crawler) Run(ctx context.Context, seedURL string, report webwalk.ReportFunc) (*Result, error) {
	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	budget := c.RequestBudget
	if budget <= 0 {
		budget = DefaultRequestBudget
	}

	frontier.Submit(seedURL)

	run := &runState{
		crawler:  c,
		frontier: frontier,
		report:   report,
		// Buffered to the concurrency cap: a fetch goroutine can always
		// deliver and exit, even if Run aborts on a broken invariant.
		results: make(chan webwalk.FetchResult, concurrency),
		hashes:   make(map[uint64]struct{}),
		result:   &Result{RequestBudget: budget},
	}

	dispatched := 0
	inFlight := 0

	for {
		// Top-up: keep the fetch pool as full as both limits allow.
		for inFlight < concurrency && frontier.HasPending() && dispatched < budget {
			u, err := frontier.Acquire()
			if err != nil {
				return nil, err
			}
			dispatched++
			inFlight++
			go func() {
				run.results <- run.fetch(ctx, u)
			}()
		}

		// Nothing outstanding: the queue or the budget ran out.
		if inFlight == 0 {
			break
		}

		// Drain: wait for one fetch, then absorb any others that are
		// already done so their slots free up in the same pass. Waiting
		// for the whole batch would let the slowest response gate new
		// dispatches.
		res := <-run.results
		inFlight--
		if err := run.finish(res); err != nil {
			return nil, err
		}
	drained:
		for inFlight > 0 {
			select {
			case res := <-run.results:
				inFlight--
				if err := run.finish(res); err != nil {
					return nil, err
				}
			default:
				break drained
			}
		}
	}

	if frontier.HasPending() && dispatched == budget {
		run.result.Reason = ReasonBudget
	} else {
		run.result.Reason = ReasonExhausted
	}
	return run.result, nil
}

// runState carries the per-run accumulators so Run's helpers don't thread
// six parameters each.
type runState struct {
	crawler  *Crawler
	frontier webwalk.Frontier
	report   webwalk.ReportFunc
	results  chan webwalk.FetchResult
	hashes   map[uint64]struct{}
	result   *Result
}

// fetch runs inside a fetch goroutine. It applies the optional per-host
// limiter before handing off to the Fetcher.
func (r *runState) fetch(ctx context.Context, rawURL string) webwalk.FetchResult {
	if r.crawler.Limiter != nil {
		if host := hostOf(rawURL); host != "" {
			// A canceled wait falls through to the Fetcher, which
			// degrades to an empty body under the same context.
			_ = r.crawler.Limiter.Wait(ctx, host)
		}
	}
	return r.crawler.Fetcher.Fetch(ctx, rawURL)
}

// finish applies one completed fetch to the frontier: marks the URL done,
// feeds extracted links back in, and emits the page report.
func (r *runState) finish(res webwalk.FetchResult) error {
	if err := r.frontier.Complete(res.URL); err != nil {
		return err
	}
	r.result.Crawled++

	var links []string
	if res.Body == "" {
		r.result.EmptyPages++
	} else {
		r.result.Bytes += len(res.Body)
		h := xxhash.Sum64String(res.Body)
		if _, ok := r.hashes[h]; ok {
			r.result.DuplicatePages++
		}
		r.hashes[h] = struct{}{}

		links = r.crawler.Extractor.ExtractLinks(res.Body)
		for _, link := range links {
			r.frontier.Submit(link)
		}
	}

	if r.report != nil {
		r.report(webwalk.PageReport{URL: res.URL, Links: links})
	}
	return nil
}

// hostOf returns the host portion of rawURL, or "" if it doesn't parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

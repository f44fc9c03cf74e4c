package crawl_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/webwalk"
	"github.com/fwojciec/webwalk/crawl"
	"github.com/fwojciec/webwalk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphCrawler builds a Crawler over a canned link graph. Each known URL
// fetches to a body that names it; the extractor resolves links from the
// graph. URLs outside the graph fetch to an empty body, like a dead link
// in a real crawl.
func graphCrawler(graph map[string][]string, concurrency, budget int) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) webwalk.FetchResult {
				if _, ok := graph[url]; !ok {
					return webwalk.FetchResult{URL: url}
				}
				return webwalk.FetchResult{URL: url, Body: "page at " + url}
			},
		},
		Extractor: &mock.LinkExtractor{
			ExtractLinksFn: func(body string) []string {
				return graph[strings.TrimPrefix(body, "page at ")]
			},
		},
		Concurrency:   concurrency,
		RequestBudget: budget,
	}
}

// diamondGraph is the four-page fixture: A links to B and C, B links to D,
// C and D have no links.
func diamondGraph() map[string][]string {
	return map[string][]string{
		"http://a.test/": {"http://b.test/", "http://c.test/"},
		"http://b.test/": {"http://d.test/"},
		"http://c.test/": {},
		"http://d.test/": {},
	}
}

func TestCrawler_Run_visits_whole_graph_within_budget(t *testing.T) {
	t.Parallel()

	c := graphCrawler(diamondGraph(), 2, 10)

	var reports []webwalk.PageReport
	result, err := c.Run(context.Background(), "http://a.test/", func(r webwalk.PageReport) {
		reports = append(reports, r)
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Crawled)
	assert.Equal(t, crawl.ReasonExhausted, result.Reason)
	assert.Equal(t, "Ran out of links to follow.", result.Banner())
	assert.Positive(t, result.Bytes)

	// Every page reported exactly once, in whatever completion order.
	pages := make(map[string]int)
	for _, r := range reports {
		pages[r.URL]++
	}
	assert.Equal(t, map[string]int{
		"http://a.test/": 1,
		"http://b.test/": 1,
		"http://c.test/": 1,
		"http://d.test/": 1,
	}, pages)

	// The seed's report lists its links in extraction order.
	for _, r := range reports {
		if r.URL == "http://a.test/" {
			assert.Equal(t, []string{"http://b.test/", "http://c.test/"}, r.Links)
		}
	}
}

func TestCrawler_Run_stops_at_request_budget(t *testing.T) {
	t.Parallel()

	c := graphCrawler(diamondGraph(), 2, 2)

	var reports []webwalk.PageReport
	result, err := c.Run(context.Background(), "http://a.test/", func(r webwalk.PageReport) {
		reports = append(reports, r)
	})
	require.NoError(t, err)

	assert.Len(t, reports, 2)
	assert.Equal(t, 2, result.Crawled)
	assert.Equal(t, crawl.ReasonBudget, result.Reason)
	assert.Equal(t, "Reached limit of 2 requests", result.Banner())
}

func TestCrawler_Run_never_fetches_beyond_budget(t *testing.T) {
	t.Parallel()

	// A wide graph: the seed links to 50 pages.
	graph := map[string][]string{"http://seed.test/": nil}
	for i := 0; i < 50; i++ {
		url := fmt.Sprintf("http://seed.test/%d", i)
		graph["http://seed.test/"] = append(graph["http://seed.test/"], url)
		graph[url] = []string{}
	}

	var mu sync.Mutex
	fetches := 0
	c := graphCrawler(graph, 8, 10)
	inner := c.Fetcher
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) webwalk.FetchResult {
			mu.Lock()
			fetches++
			mu.Unlock()
			return inner.Fetch(ctx, url)
		},
	}

	result, err := c.Run(context.Background(), "http://seed.test/", nil)
	require.NoError(t, err)

	assert.Equal(t, 10, fetches, "dispatches must match the budget exactly")
	assert.Equal(t, 10, result.Crawled)
	assert.Equal(t, crawl.ReasonBudget, result.Reason)
}

func TestCrawler_Run_respects_concurrency_limit(t *testing.T) {
	t.Parallel()

	graph := map[string][]string{"http://seed.test/": nil}
	for i := 0; i < 30; i++ {
		url := fmt.Sprintf("http://seed.test/%d", i)
		graph["http://seed.test/"] = append(graph["http://seed.test/"], url)
		graph[url] = []string{}
	}

	var mu sync.Mutex
	current, peak := 0, 0
	c := graphCrawler(graph, 3, 100)
	inner := c.Fetcher
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) webwalk.FetchResult {
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			return inner.Fetch(ctx, url)
		},
	}

	_, err := c.Run(context.Background(), "http://seed.test/", nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, peak, 3, "in-flight fetches must never exceed the limit")
}

func TestCrawler_Run_empty_body_yields_no_links(t *testing.T) {
	t.Parallel()

	extractorCalled := false
	c := &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) webwalk.FetchResult {
				// Transport failure or a non-HTML response: empty body.
				return webwalk.FetchResult{URL: url}
			},
		},
		Extractor: &mock.LinkExtractor{
			ExtractLinksFn: func(string) []string {
				extractorCalled = true
				return nil
			},
		},
		Concurrency:   2,
		RequestBudget: 10,
	}

	var reports []webwalk.PageReport
	result, err := c.Run(context.Background(), "http://dead.test/", func(r webwalk.PageReport) {
		reports = append(reports, r)
	})
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, "http://dead.test/", reports[0].URL)
	assert.Empty(t, reports[0].Links)
	assert.False(t, extractorCalled, "extractor must not run on an empty body")
	assert.Equal(t, 1, result.Crawled)
	assert.Equal(t, 1, result.EmptyPages)
	assert.Equal(t, crawl.ReasonExhausted, result.Reason)
}

func TestCrawler_Run_serial_crawl_reports_in_discovery_order(t *testing.T) {
	t.Parallel()

	// With one fetch slot, completion order collapses to FIFO frontier
	// order, which makes the breadth-first expansion observable.
	c := graphCrawler(diamondGraph(), 1, 10)

	var order []string
	_, err := c.Run(context.Background(), "http://a.test/", func(r webwalk.PageReport) {
		order = append(order, r.URL)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test/", "http://b.test/", "http://c.test/", "http://d.test/"}, order)
}

func TestCrawler_Run_counts_duplicate_page_bodies(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"http://a.test/": "<a href=\"http://b.test/\"></a><a href=\"http://c.test/\"></a>",
		"http://b.test/": "same boilerplate",
		"http://c.test/": "same boilerplate",
	}
	links := map[string][]string{
		bodies["http://a.test/"]: {"http://b.test/", "http://c.test/"},
	}

	c := &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) webwalk.FetchResult {
				return webwalk.FetchResult{URL: url, Body: bodies[url]}
			},
		},
		Extractor: &mock.LinkExtractor{
			ExtractLinksFn: func(body string) []string {
				return links[body]
			},
		},
		Concurrency:   2,
		RequestBudget: 10,
	}

	result, err := c.Run(context.Background(), "http://a.test/", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Crawled)
	assert.Equal(t, 1, result.DuplicatePages)
}

func TestCrawler_Run_applies_domain_limiter_per_host(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	waits := make(map[string]int)

	c := graphCrawler(diamondGraph(), 2, 10)
	c.Limiter = &mock.DomainLimiter{
		WaitFn: func(_ context.Context, domain string) error {
			mu.Lock()
			waits[domain]++
			mu.Unlock()
			return nil
		},
	}

	_, err := c.Run(context.Background(), "http://a.test/", nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]int{
		"a.test": 1,
		"b.test": 1,
		"c.test": 1,
		"d.test": 1,
	}, waits)
}

func TestCrawler_Run_propagates_frontier_contract_violations(t *testing.T) {
	t.Parallel()

	// A frontier that breaks its own contract: Complete always fails.
	// The crawl must abort rather than recover.
	broken := &mock.Frontier{
		SubmitFn:     func(string) bool { return true },
		HasPendingFn: func() bool { return true },
		AcquireFn:    func() (string, error) { return "http://a.test/", nil },
		CompleteFn: func(url string) error {
			return webwalk.Errorf(webwalk.ECONFLICT, "complete %q: not in flight", url)
		},
	}

	c := graphCrawler(diamondGraph(), 1, 1)
	c.Frontier = broken

	_, err := c.Run(context.Background(), "http://a.test/", nil)
	require.Error(t, err)
	assert.Equal(t, webwalk.ECONFLICT, webwalk.ErrorCode(err))
}

func TestCrawler_Run_uses_defaults_for_zero_limits(t *testing.T) {
	t.Parallel()

	c := graphCrawler(diamondGraph(), 0, 0)

	result, err := c.Run(context.Background(), "http://a.test/", nil)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Crawled)
	assert.Equal(t, crawl.DefaultRequestBudget, result.RequestBudget)
}

func TestCrawler_Run_budget_met_exactly_at_queue_end(t *testing.T) {
	t.Parallel()

	// Budget equals graph size: the queue and the budget run out
	// together, which counts as exhausting the links, not the budget.
	c := graphCrawler(diamondGraph(), 2, 4)

	result, err := c.Run(context.Background(), "http://a.test/", nil)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Crawled)
	assert.Equal(t, crawl.ReasonExhausted, result.Reason)
}

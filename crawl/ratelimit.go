package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/webwalk"
	"golang.org/x/time/rate"
)

var _ webwalk.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles fetches per host using token buckets. Each host
// gets its own limiter, so concurrent fetches to different hosts proceed
// freely while requests within one host are spaced out. This is a
// politeness knob layered on top of the transport's own per-host
// connection cap; the two are not coordinated.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each host, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the host's rate limit admits a request.
// Returns an error if the context is canceled before then.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

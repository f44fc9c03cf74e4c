// Package mock provides function-field test doubles for webwalk interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/webwalk"
)

var _ webwalk.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of webwalk.Frontier.
type Frontier struct {
	SubmitFn     func(url string) bool
	HasPendingFn func() bool
	AcquireFn    func() (string, error)
	CompleteFn   func(url string) error
	LenFn        func() int
	SeenFn       func(url string) bool
}

func (f *Frontier) Submit(url string) bool {
	return f.SubmitFn(url)
}

func (f *Frontier) HasPending() bool {
	return f.HasPendingFn()
}

func (f *Frontier) Acquire() (string, error) {
	return f.AcquireFn()
}

func (f *Frontier) Complete(url string) error {
	return f.CompleteFn(url)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ webwalk.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of webwalk.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

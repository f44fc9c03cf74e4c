// Package slog provides logging decorators for webwalk interfaces.
package slog

import (
	"log/slog"

	"github.com/fwojciec/webwalk"
)

// Ensure LoggingFrontier implements webwalk.Frontier.
var _ webwalk.Frontier = (*LoggingFrontier)(nil)

// LoggingFrontier wraps a Frontier with debug traces of URL lifecycle
// transitions: submit, acquire, and complete.
type LoggingFrontier struct {
	next   webwalk.Frontier
	logger *slog.Logger
}

// NewLoggingFrontier creates a new LoggingFrontier.
func NewLoggingFrontier(next webwalk.Frontier, logger *slog.Logger) *LoggingFrontier {
	return &LoggingFrontier{next: next, logger: logger}
}

// Submit delegates to the wrapped frontier and traces accepted URLs.
// Rejected duplicates are not traced; on a real crawl they vastly
// outnumber acceptances.
func (f *LoggingFrontier) Submit(url string) bool {
	accepted := f.next.Submit(url)
	if accepted {
		f.logger.Debug("submitted", "url", url, "pending", f.next.Len())
	}
	return accepted
}

// HasPending delegates to the wrapped frontier.
func (f *LoggingFrontier) HasPending() bool {
	return f.next.HasPending()
}

// Acquire delegates to the wrapped frontier and traces the acquired URL.
func (f *LoggingFrontier) Acquire() (string, error) {
	url, err := f.next.Acquire()
	if err == nil {
		f.logger.Debug("acquired", "url", url)
	}
	return url, err
}

// Complete delegates to the wrapped frontier and traces the completion.
func (f *LoggingFrontier) Complete(url string) error {
	err := f.next.Complete(url)
	if err == nil {
		f.logger.Debug("completed", "url", url)
	}
	return err
}

// Len delegates to the wrapped frontier.
func (f *LoggingFrontier) Len() int {
	return f.next.Len()
}

// Seen delegates to the wrapped frontier.
func (f *LoggingFrontier) Seen(url string) bool {
	return f.next.Seen(url)
}

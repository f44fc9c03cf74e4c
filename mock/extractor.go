package mock

import "github.com/fwojciec/webwalk"

var _ webwalk.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of webwalk.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body string) []string
}

func (e *LinkExtractor) ExtractLinks(body string) []string {
	return e.ExtractLinksFn(body)
}

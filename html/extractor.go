// Package html provides a streaming link extractor built on the
// golang.org/x/net/html tokenizer.
package html

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/fwojciec/webwalk"
)

// Compile-time interface verification.
var _ webwalk.LinkExtractor = (*Extractor)(nil)

// Extractor scans anchor tags with the x/net/html tokenizer. It builds no
// DOM: tags stream past and only a-tag href values are collected, which
// keeps extraction cheap on large pages.
type Extractor struct{}

// NewExtractor creates a new tokenizer-based Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the http and https href values of anchor tags in
// document order. Anchors without an href, or with an empty one, are
// skipped. Duplicates are preserved. The tokenizer tolerates malformed
// HTML; scanning simply stops at the end of input.
func (e *Extractor) ExtractLinks(body string) []string {
	var links []string
	z := html.NewTokenizer(strings.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way the scan is done.
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if len(name) != 1 || name[0] != 'a' || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					if href := string(val); crawlable(href) {
						links = append(links, href)
					}
					break
				}
				if !more {
					break
				}
			}
		}
	}
}

// crawlable reports whether href uses the http or https scheme. This is a
// literal prefix check: scheme case is not folded, so "HTTP://..." does
// not qualify. URLs are identities here, not locations, and widening the
// match would change which pages get crawled.
func crawlable(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

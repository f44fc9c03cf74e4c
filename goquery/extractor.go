// Package goquery provides a DOM-based implementation of
// webwalk.LinkExtractor built on PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/webwalk"
)

// Compile-time interface verification.
var _ webwalk.LinkExtractor = (*Extractor)(nil)

// Extractor selects anchor elements from a fully parsed document. It pays
// the allocation cost of a DOM in exchange for selector-based extraction;
// the streaming html.Extractor is the lighter default.
type Extractor struct{}

// NewExtractor creates a new goquery-based Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the http and https href values of anchor elements
// in document order. Duplicates are preserved; the scheme match is a
// literal, case-sensitive prefix check, the same rule the streaming
// extractor applies.
func (e *Extractor) ExtractLinks(body string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			return
		}
		links = append(links, href)
	})
	return links
}

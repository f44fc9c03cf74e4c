package webwalk

// LinkExtractor scans an HTML document for outbound links.
type LinkExtractor interface {
	// ExtractLinks returns the href values of anchor tags in document
	// order. Only http and https hrefs are included; the scheme match is
	// a literal, case-sensitive prefix check. Anchors with a missing or
	// empty href are skipped. Duplicates within a page are preserved;
	// deduplication is the Frontier's responsibility.
	ExtractLinks(body string) []string
}

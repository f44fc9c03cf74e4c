package webwalk

import (
	"fmt"
	"io"
)

// PageReport describes one completed page: its URL and the links
// discovered on it, in extraction order.
type PageReport struct {
	URL   string
	Links []string
}

// ReportFunc is called once per completed page. Reports arrive in
// completion order, not discovery order: pages that answer faster are
// reported first.
type ReportFunc func(PageReport)

// WriteReport writes a page report in the line-oriented crawl output
// format: the page URL on its own line, followed by each discovered link
// indented by two spaces. A page with no links emits only its URL line.
func WriteReport(w io.Writer, r PageReport) error {
	if _, err := fmt.Fprintln(w, r.URL); err != nil {
		return err
	}
	for _, link := range r.Links {
		if _, err := fmt.Fprintf(w, "  %s\n", link); err != nil {
			return err
		}
	}
	return nil
}

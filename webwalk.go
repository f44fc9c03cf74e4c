// Package webwalk provides a bounded-concurrency breadth-first web crawler.
// Starting from a seed URL it discovers pages, extracts outbound links, and
// recursively visits previously unseen links, fetching each URL at most
// once. Two independent limits gate admission: a concurrency cap on
// simultaneous fetches and a total request budget for the whole run.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., crawl/, http/, goquery/).
package webwalk

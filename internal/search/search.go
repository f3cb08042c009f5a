// Package search defines the web-search augmentation contract: a Searcher
// that fetches grounding text for a query, and an IntentDetector that decides
// whether a message warrants a lookup at all.
package search

import "context"

// Searcher fetches a short grounding snippet for the given query.
// An empty string with a nil error is the normal "no result" case.
// Concrete implementations live in separate packages (e.g., search.duckduckgo)
// and typically also implement core.Module for lifecycle management.
type Searcher interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// IntentDetector decides whether a message asks for fresh or searched
// information. Kept behind an interface so the keyword heuristic can be
// swapped for a classifier without touching the pipeline.
type IntentDetector interface {
	NeedsSearch(message string) bool
}

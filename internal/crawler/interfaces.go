package crawler

import "context"

// Fetcher is the crawler's single I/O boundary for HTTP. It performs one
// blocking GET and reports transport failures as errors; HTTP status
// handling is the caller's concern. Kept narrow so tests can swap in a
// fake source.
type Fetcher interface {
	Get(ctx context.Context, url string) (*HTTPResponse, error)
}

// RecordStore accumulates deduplicated records and persists them between
// runs. Implementations must keep Accept/Flush safe for a single writer;
// the controller never calls them from more than one goroutine.
type RecordStore interface {
	// Load rebuilds the in-memory record list and seen-set from the
	// persisted file. A missing or unreadable file yields an empty store,
	// never a fatal error; the returned error is advisory.
	Load() error

	// Seen reports whether a record identity has already been captured.
	Seen(entryURL string) bool

	// Accept adds the record iff its identity is unseen and reports
	// whether it was added.
	Accept(rec Record) bool

	// Flush atomically rewrites the whole output file in discovery order.
	Flush() error

	// Count returns the number of accumulated records.
	Count() int

	// Records returns the accumulated records in discovery order.
	Records() []Record
}

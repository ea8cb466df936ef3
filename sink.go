package bfscrawl

import "context"

// Sink receives crawl records in processing order.
// Implementations must be append-only. A write error is fatal to the run.
type Sink interface {
	// Visited records a URL that was popped from the frontier and fetched.
	Visited(ctx context.Context, rec Record) error

	// Discovered records a URL that was newly admitted to the frontier.
	Discovered(ctx context.Context, rec Record) error

	// Close flushes buffered records.
	Close() error
}

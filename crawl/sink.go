package crawl

import (
	"context"

	"github.com/fwojciec/bfscrawl"
)

// Ensure MultiSink implements bfscrawl.Sink at compile time.
var _ bfscrawl.Sink = MultiSink(nil)

// MultiSink writes each record to every sink in order, stopping at the
// first error.
type MultiSink []bfscrawl.Sink

func (m MultiSink) Visited(ctx context.Context, rec bfscrawl.Record) error {
	for _, s := range m {
		if err := s.Visited(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Discovered(ctx context.Context, rec bfscrawl.Record) error {
	for _, s := range m {
		if err := s.Discovered(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error.
func (m MultiSink) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

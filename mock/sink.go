package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/bfscrawl"
)

var _ bfscrawl.Sink = (*Sink)(nil)

// Sink is a mock implementation of bfscrawl.Sink.
type Sink struct {
	VisitedFn    func(ctx context.Context, rec bfscrawl.Record) error
	DiscoveredFn func(ctx context.Context, rec bfscrawl.Record) error
	CloseFn      func() error
}

func (s *Sink) Visited(ctx context.Context, rec bfscrawl.Record) error {
	return s.VisitedFn(ctx, rec)
}

func (s *Sink) Discovered(ctx context.Context, rec bfscrawl.Record) error {
	return s.DiscoveredFn(ctx, rec)
}

func (s *Sink) Close() error {
	return s.CloseFn()
}

var _ bfscrawl.Sink = (*RecordingSink)(nil)

// RecordingSink captures records in memory, rendering them the way the
// text output log does: visited URLs bare, discoveries tab-prefixed.
type RecordingSink struct {
	mu        sync.Mutex
	Lines     []string
	Visits    []bfscrawl.Record
	Discovers []bfscrawl.Record
	Closed    bool
}

func (s *RecordingSink) Visited(_ context.Context, rec bfscrawl.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = append(s.Lines, rec.URL)
	s.Visits = append(s.Visits, rec)
	return nil
}

func (s *RecordingSink) Discovered(_ context.Context, rec bfscrawl.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = append(s.Lines, "\t"+rec.URL)
	s.Discovers = append(s.Discovers, rec)
	return nil
}

func (s *RecordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// VisitedURLs returns the visited URLs in emission order.
func (s *RecordingSink) VisitedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	urls := make([]string, len(s.Visits))
	for i, rec := range s.Visits {
		urls[i] = rec.URL
	}
	return urls
}

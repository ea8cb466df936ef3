package crawl

import (
	"sync"

	"github.com/fwojciec/bfscrawl"
	"github.com/fwojciec/bfscrawl/bloom"
)

// Compile-time interface verification.
var _ bfscrawl.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory two-generation BFS queue with Bloom-backed
// deduplication. It is safe for concurrent use by multiple goroutines.
//
// URLs only move forward: next → current → popped → visited. The seen
// index holds every URL that ever entered the frontier, so a URL can be in
// at most one of {visited, current, next}.
type Frontier struct {
	mu      sync.Mutex
	seen    *bloom.Index
	current []string
	next    []string
	visited int
	level   int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the seen filter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewIndex(n, fpRate),
	}
}

// SeedCurrent places the seed URL into the current generation.
// Returns false if the URL was already seen.
func (f *Frontier) SeedCurrent(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Add(url) {
		return false
	}
	f.current = append(f.current, url)
	return true
}

// AddToNext inserts a canonical URL into the next generation.
// Returns false if the URL is already visited, current or next.
func (f *Frontier) AddToNext(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Add(url) {
		return false
	}
	f.next = append(f.next, url)
	return true
}

// NextPending removes and returns the oldest URL of the current generation.
// The bool result is false if the current generation is exhausted.
func (f *Frontier) NextPending() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.current) == 0 {
		return "", false
	}
	url := f.current[0]
	f.current[0] = ""
	f.current = f.current[1:]
	return url, true
}

// SwapGenerations makes the next generation current and starts an empty
// next generation. It is a no-op returning false while the current
// generation still has work, and returns false when there was nothing to
// promote, meaning the crawl is complete.
func (f *Frontier) SwapGenerations() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.current) > 0 || len(f.next) == 0 {
		return false
	}
	f.current = f.next
	f.next = nil
	f.level++
	return true
}

// HasWork reports whether the current or next generation is non-empty.
func (f *Frontier) HasWork() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.current) > 0 || len(f.next) > 0
}

// MarkVisited records a popped URL as fetched.
func (f *Frontier) MarkVisited(_ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited++
}

// Seen returns true if the URL has been visited or queued.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(url)
}

// Visited returns the number of URLs marked visited.
func (f *Frontier) Visited() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited
}

// CurrentLen returns the number of URLs left in the current generation.
func (f *Frontier) CurrentLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.current)
}

// NextLen returns the number of URLs queued for the next generation.
func (f *Frontier) NextLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.next)
}

// Level returns the BFS depth of the current generation. The seed is level 0.
func (f *Frontier) Level() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level
}

// SeenLen returns the number of URLs that ever entered the frontier.
func (f *Frontier) SeenLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Len()
}

// SeenEstimate returns the Bloom filter's estimate of SeenLen.
func (f *Frontier) SeenEstimate() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.EstimatedCount()
}

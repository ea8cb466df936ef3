package bfscrawl

// URLFrontier holds the BFS queue as two generations.
//
// A canonical URL appears in at most one of {visited, current generation,
// next generation} for the lifetime of a crawl.
type URLFrontier interface {
	// SeedCurrent places the seed URL into the current generation.
	SeedCurrent(url string) bool

	// AddToNext inserts a canonical URL into the next generation.
	// Returns false if the URL is already visited or queued.
	AddToNext(url string) bool

	// NextPending removes and returns one URL from the current generation.
	// Returns false when the current generation is exhausted.
	NextPending() (string, bool)

	// SwapGenerations promotes the next generation to current.
	// Returns false if there was nothing to promote.
	SwapGenerations() bool

	// HasWork reports whether either generation is non-empty.
	HasWork() bool

	// MarkVisited records a popped URL as fetched.
	MarkVisited(url string)

	// Seen returns true if the URL has been visited or queued.
	Seen(url string) bool
}

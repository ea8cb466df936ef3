package mock

import "github.com/fwojciec/bfscrawl"

var _ bfscrawl.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of bfscrawl.URLFrontier.
type URLFrontier struct {
	SeedCurrentFn     func(url string) bool
	AddToNextFn       func(url string) bool
	NextPendingFn     func() (string, bool)
	SwapGenerationsFn func() bool
	HasWorkFn         func() bool
	MarkVisitedFn     func(url string)
	SeenFn            func(url string) bool
}

func (f *URLFrontier) SeedCurrent(url string) bool {
	return f.SeedCurrentFn(url)
}

func (f *URLFrontier) AddToNext(url string) bool {
	return f.AddToNextFn(url)
}

func (f *URLFrontier) NextPending() (string, bool) {
	return f.NextPendingFn()
}

func (f *URLFrontier) SwapGenerations() bool {
	return f.SwapGenerationsFn()
}

func (f *URLFrontier) HasWork() bool {
	return f.HasWorkFn()
}

func (f *URLFrontier) MarkVisited(url string) {
	f.MarkVisitedFn(url)
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

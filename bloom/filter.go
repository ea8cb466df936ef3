// Package bloom provides URL deduplication backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Index is an exact set of URLs fronted by a Bloom filter.
//
// The filter answers most membership checks for new URLs without touching
// the map; a positive filter answer is always confirmed against the exact
// set, so false positives never hide a new URL.
// Index is not safe for concurrent use.
type Index struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewIndex creates an Index sized for n expected URLs
// with the given false positive rate for the filter.
func NewIndex(n uint, fpRate float64) *Index {
	if n == 0 {
		n = 1
	}
	return &Index{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}),
	}
}

// Add inserts the URL. Returns false if it was already present.
func (i *Index) Add(url string) bool {
	if i.Contains(url) {
		return false
	}
	i.f.AddString(url)
	i.exact[url] = struct{}{}
	return true
}

// Contains reports whether the URL has been added.
func (i *Index) Contains(url string) bool {
	if !i.f.TestString(url) {
		return false
	}
	_, ok := i.exact[url]
	return ok
}

// Len returns the exact number of URLs in the index.
func (i *Index) Len() int {
	return len(i.exact)
}

// EstimatedCount returns the filter's approximation of the number of URLs.
func (i *Index) EstimatedCount() uint {
	return uint(i.f.ApproximatedSize())
}

package mock

import (
	"context"

	"github.com/fwojciec/bfscrawl"
)

var _ bfscrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bfscrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*bfscrawl.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*bfscrawl.Page, error) {
	return f.FetchFn(ctx, url)
}

var _ bfscrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of bfscrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}

package bfscrawl

import "context"

// Page is the result of fetching a single URL.
type Page struct {
	// URL is the final location after redirects.
	URL string

	// Links are the absolute outbound hyperlinks in document order.
	// Duplicates and out-of-domain links are kept; admission filters them.
	Links []string

	// ContentHash is a hash of the raw response body.
	ContentHash string
}

// Fetcher retrieves a page and extracts its raw outbound links.
type Fetcher interface {
	// Fetch downloads the URL and returns its links.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// LinkExtractor extracts hyperlinks from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns anchor targets resolved
	// against baseURL, in document order.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

package bfscrawl

import "context"

// Canonicalizer normalizes raw URL strings into their identity form.
type Canonicalizer interface {
	// Canonicalize returns the canonical form of rawURL.
	// Returns EINVALID if the URL cannot be normalized.
	Canonicalize(rawURL string) (string, error)
}

// HTMLProbe checks that a URL resolves to a fetchable HTML document
// without downloading the body.
type HTMLProbe interface {
	IsHTML(ctx context.Context, url string) (bool, error)
}

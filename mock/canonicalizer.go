package mock

import (
	"context"

	"github.com/fwojciec/bfscrawl"
)

var _ bfscrawl.Canonicalizer = (*Canonicalizer)(nil)

// Canonicalizer is a mock implementation of bfscrawl.Canonicalizer.
type Canonicalizer struct {
	CanonicalizeFn func(rawURL string) (string, error)
}

func (c *Canonicalizer) Canonicalize(rawURL string) (string, error) {
	return c.CanonicalizeFn(rawURL)
}

var _ bfscrawl.HTMLProbe = (*HTMLProbe)(nil)

// HTMLProbe is a mock implementation of bfscrawl.HTMLProbe.
type HTMLProbe struct {
	IsHTMLFn func(ctx context.Context, url string) (bool, error)
}

func (p *HTMLProbe) IsHTML(ctx context.Context, url string) (bool, error) {
	return p.IsHTMLFn(ctx, url)
}

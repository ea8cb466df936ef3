package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/bfscrawl"
)

// Ensure Probe implements bfscrawl.HTMLProbe at compile time.
var _ bfscrawl.HTMLProbe = (*Probe)(nil)

// Probe checks with a HEAD request that a URL serves HTML directly.
// Redirects are not followed, so a redirecting URL is not HTML.
type Probe struct {
	client *http.Client
	opts   options
}

// NewProbe creates a new Probe.
func NewProbe(opts ...Option) *Probe {
	o := newOptions(opts)
	c := o.client()
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Probe{client: c, opts: o}
}

// IsHTML reports whether url answers 200 with an HTML content type.
func (p *Probe) IsHTML(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := p.client.Do(p.opts.newRequest(req))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	return isHTML(resp.Header.Get("Content-Type")), nil
}

package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bfscrawl"
	"golang.org/x/net/html/charset"
)

// Ensure Fetcher implements bfscrawl.Fetcher at compile time.
var _ bfscrawl.Fetcher = (*Fetcher)(nil)

// Fetcher downloads HTML pages and extracts their outbound links.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	opts      options
	extractor bfscrawl.LinkExtractor
}

// NewFetcher creates a new HTTP-based Fetcher that extracts links with
// extractor.
func NewFetcher(extractor bfscrawl.LinkExtractor, opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		client:    o.client(),
		opts:      o,
		extractor: extractor,
	}
}

// Fetch downloads url and returns its links resolved against the final
// location after redirects. Non-200 and non-HTML responses are errors.
// The body is decoded to UTF-8 according to its declared charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*bfscrawl.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(f.opts.newRequest(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, bfscrawl.Errorf(bfscrawl.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}
	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return nil, bfscrawl.Errorf(bfscrawl.EINVALID, "unsupported content type %q for %s", contentType, url)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}

	final := resp.Request.URL.String()
	links, err := f.extractor.ExtractLinks(string(body), final)
	if err != nil {
		return nil, fmt.Errorf("extract links from %s: %w", url, err)
	}

	return &bfscrawl.Page{
		URL:         final,
		Links:       links,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64(raw)),
	}, nil
}

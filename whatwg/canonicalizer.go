// Package whatwg canonicalizes URLs following the WHATWG URL standard.
package whatwg

import (
	"strings"

	"github.com/fwojciec/bfscrawl"
	"github.com/nlnwa/whatwg-url/canonicalizer"
	"github.com/nlnwa/whatwg-url/url"
)

// Ensure Canonicalizer implements bfscrawl.Canonicalizer at compile time.
var _ bfscrawl.Canonicalizer = (*Canonicalizer)(nil)

// Canonicalizer produces the identity form of crawlable URLs: scheme and
// host lower-cased, default port removed, dot segments resolved, user info
// and fragment removed, and query parameters stably sorted by key.
type Canonicalizer struct {
	parser url.Parser
}

// NewCanonicalizer creates a new Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		parser: canonicalizer.New(
			canonicalizer.WithRemoveUserInfo(),
			canonicalizer.WithRemoveFragment(),
			canonicalizer.WithSortQuery(canonicalizer.SortKeys),
		),
	}
}

// Canonicalize returns the canonical form of rawURL.
// Returns EINVALID if rawURL does not parse or is not an http(s) URL.
func (c *Canonicalizer) Canonicalize(rawURL string) (string, error) {
	u, err := c.parser.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", bfscrawl.Errorf(bfscrawl.EINVALID, "canonicalize %q: %v", rawURL, err)
	}

	switch u.Scheme() {
	case "http", "https":
	default:
		return "", bfscrawl.Errorf(bfscrawl.EINVALID, "canonicalize %q: unsupported scheme %q", rawURL, u.Scheme())
	}
	if u.Hostname() == "" {
		return "", bfscrawl.Errorf(bfscrawl.EINVALID, "canonicalize %q: missing host", rawURL)
	}
	return u.String(), nil
}

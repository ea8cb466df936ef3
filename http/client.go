// Package http implements the network collaborators of the crawler over
// net/http: the page Fetcher, the HEAD-based HTMLProbe and the robots.txt
// source.
package http

import (
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/bfscrawl"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBodySize is the default limit on downloaded page bodies.
const DefaultMaxBodySize = 10 << 20

// options holds settings shared by every client in this package.
type options struct {
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	transport   http.RoundTripper
}

// Option configures a Fetcher, Probe or RobotsSource.
type Option func(*options)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		o.maxBodySize = n
	}
}

// WithTransport replaces the default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout:     DefaultTimeout,
		userAgent:   bfscrawl.DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) client() *http.Client {
	return &http.Client{
		Timeout:   o.timeout,
		Transport: o.transport,
	}
}

func (o options) newRequest(req *http.Request) *http.Request {
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}
	return req
}

// isHTML reports whether a Content-Type header denotes an HTML document.
func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

package crawl_test

import (
	"context"
	"strings"

	"github.com/fwojciec/bfscrawl"
	"github.com/fwojciec/bfscrawl/mock"
)

// lowerCanonicalizer lower-cases URLs and drops fragments.
func lowerCanonicalizer() *mock.Canonicalizer {
	return &mock.Canonicalizer{
		CanonicalizeFn: func(rawURL string) (string, error) {
			if strings.Contains(rawURL, " ") {
				return "", bfscrawl.Errorf(bfscrawl.EINVALID, "invalid URL %q", rawURL)
			}
			u, _, _ := strings.Cut(rawURL, "#")
			return strings.ToLower(u), nil
		},
	}
}

// htmlProbe reports every URL as HTML except those with a listed suffix.
func htmlProbe(nonHTMLSuffixes ...string) *mock.HTMLProbe {
	return &mock.HTMLProbe{
		IsHTMLFn: func(_ context.Context, url string) (bool, error) {
			for _, s := range nonHTMLSuffixes {
				if strings.HasSuffix(url, s) {
					return false, nil
				}
			}
			return true, nil
		},
	}
}

// robotsSource serves robots.txt bodies per host; unknown hosts have none.
func robotsSource(bodies map[string]string) *mock.RobotsSource {
	return &mock.RobotsSource{
		FetchRobotsFn: func(_ context.Context, _, host string) ([]byte, error) {
			body, ok := bodies[host]
			if !ok {
				return nil, bfscrawl.Errorf(bfscrawl.ENOTFOUND, "no robots.txt for %s", host)
			}
			return []byte(body), nil
		},
	}
}

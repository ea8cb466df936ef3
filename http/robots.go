package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/bfscrawl"
)

// maxRobotsSize limits how much of a robots.txt file is read.
const maxRobotsSize = 512 << 10

// Ensure RobotsSource implements bfscrawl.RobotsSource at compile time.
var _ bfscrawl.RobotsSource = (*RobotsSource)(nil)

// RobotsSource downloads robots.txt files.
type RobotsSource struct {
	client *http.Client
	opts   options
}

// NewRobotsSource creates a new RobotsSource.
func NewRobotsSource(opts ...Option) *RobotsSource {
	o := newOptions(opts)
	return &RobotsSource{client: o.client(), opts: o}
}

// FetchRobots downloads scheme://host/robots.txt.
// Returns ENOTFOUND for 4xx responses and EUNAVAILABLE for other
// non-200 responses.
func (s *RobotsSource) FetchRobots(ctx context.Context, scheme, host string) ([]byte, error) {
	url := scheme + "://" + host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(s.opts.newRequest(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, bfscrawl.Errorf(bfscrawl.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return nil, bfscrawl.Errorf(bfscrawl.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

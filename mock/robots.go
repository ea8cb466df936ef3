package mock

import (
	"context"

	"github.com/fwojciec/bfscrawl"
)

var _ bfscrawl.RobotsSource = (*RobotsSource)(nil)

// RobotsSource is a mock implementation of bfscrawl.RobotsSource.
type RobotsSource struct {
	FetchRobotsFn func(ctx context.Context, scheme, host string) ([]byte, error)
}

func (s *RobotsSource) FetchRobots(ctx context.Context, scheme, host string) ([]byte, error) {
	return s.FetchRobotsFn(ctx, scheme, host)
}

var _ bfscrawl.RobotsParser = (*RobotsParser)(nil)

// RobotsParser is a mock implementation of bfscrawl.RobotsParser.
type RobotsParser struct {
	ParseFn func(host string, body []byte) (bfscrawl.ExclusionRules, error)
}

func (p *RobotsParser) Parse(host string, body []byte) (bfscrawl.ExclusionRules, error) {
	return p.ParseFn(host, body)
}

var _ bfscrawl.ExclusionRules = (*ExclusionRules)(nil)

// ExclusionRules is a mock implementation of bfscrawl.ExclusionRules.
type ExclusionRules struct {
	ExcludesFn   func(target string) bool
	DisallowedFn func() []string
}

func (r *ExclusionRules) Excludes(target string) bool {
	return r.ExcludesFn(target)
}

func (r *ExclusionRules) Disallowed() []string {
	return r.DisallowedFn()
}

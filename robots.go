package bfscrawl

import "context"

// RobotsSource retrieves a host's exclusion declaration (robots.txt).
type RobotsSource interface {
	// FetchRobots returns the raw robots.txt body for the host.
	// Returns ENOTFOUND when the host does not publish one.
	FetchRobots(ctx context.Context, scheme, host string) ([]byte, error)
}

// ExclusionRules is the immutable set of disallow rules cached for one host.
type ExclusionRules interface {
	// Excludes reports whether the target URL is disallowed.
	Excludes(target string) bool

	// Disallowed returns the raw rule strings, for logging.
	Disallowed() []string
}

// RobotsParser turns a robots.txt body into exclusion rules for a host.
type RobotsParser interface {
	Parse(host string, body []byte) (ExclusionRules, error)
}

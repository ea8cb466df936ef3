package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/bfscrawl"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// noRules is cached for hosts whose robots.txt could not be loaded.
type noRules struct{}

func (noRules) Excludes(string) bool { return false }
func (noRules) Disallowed() []string { return nil }

// ExclusionCache caches exclusion rules per host for the lifetime of a run.
// Each host is looked up at most once, even under concurrent first access.
// A host whose robots.txt is unavailable or unparsable is treated as
// unrestricted and never retried.
type ExclusionCache struct {
	source bfscrawl.RobotsSource
	parser bfscrawl.RobotsParser
	logger *zap.Logger

	mu    sync.RWMutex
	rules map[string]bfscrawl.ExclusionRules
	group singleflight.Group
}

// NewExclusionCache creates an empty ExclusionCache.
func NewExclusionCache(source bfscrawl.RobotsSource, parser bfscrawl.RobotsParser, logger *zap.Logger) *ExclusionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExclusionCache{
		source: source,
		parser: parser,
		logger: logger,
		rules:  make(map[string]bfscrawl.ExclusionRules),
	}
}

// RulesFor returns the cached rules for host, loading them on first use.
func (c *ExclusionCache) RulesFor(ctx context.Context, scheme, host string) bfscrawl.ExclusionRules {
	if rules, ok := c.cached(host); ok {
		return rules
	}

	v, _, _ := c.group.Do(host, func() (any, error) {
		if rules, ok := c.cached(host); ok {
			return rules, nil
		}
		rules := c.load(ctx, scheme, host)

		c.mu.Lock()
		c.rules[host] = rules
		c.mu.Unlock()
		return rules, nil
	})
	return v.(bfscrawl.ExclusionRules)
}

// IsExcluded reports whether target matches any rule cached for host.
// Hosts that were never loaded have no rules.
func (c *ExclusionCache) IsExcluded(host, target string) bool {
	rules, ok := c.cached(host)
	if !ok {
		return false
	}
	return rules.Excludes(target)
}

// Hosts returns the number of hosts with cached rules.
func (c *ExclusionCache) Hosts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

func (c *ExclusionCache) cached(host string) (bfscrawl.ExclusionRules, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rules, ok := c.rules[host]
	return rules, ok
}

func (c *ExclusionCache) load(ctx context.Context, scheme, host string) bfscrawl.ExclusionRules {
	body, err := c.source.FetchRobots(ctx, scheme, host)
	if err != nil {
		if bfscrawl.ErrorCode(err) == bfscrawl.ENOTFOUND {
			c.logger.Debug("no robots.txt", zap.String("host", host))
		} else {
			c.logger.Warn("robots.txt unavailable, treating host as unrestricted",
				zap.String("host", host), zap.Error(err))
		}
		return noRules{}
	}

	rules, err := c.parser.Parse(host, body)
	if err != nil {
		c.logger.Warn("robots.txt unparsable, treating host as unrestricted",
			zap.String("host", host), zap.Error(err))
		return noRules{}
	}

	c.logger.Debug("robots.txt loaded",
		zap.String("host", host), zap.Strings("disallow", rules.Disallowed()))
	return rules
}

package crawl_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/bfscrawl"
	"github.com/fwojciec/bfscrawl/crawl"
	"github.com/fwojciec/bfscrawl/mock"
	"github.com/fwojciec/bfscrawl/robotstxt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExclusionCache_RulesFor(t *testing.T) {
	t.Parallel()

	t.Run("loads and caches rules once per host", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		source := &mock.RobotsSource{
			FetchRobotsFn: func(_ context.Context, scheme, host string) ([]byte, error) {
				calls.Add(1)
				assert.Equal(t, "https", scheme)
				assert.Equal(t, "example.com", host)
				return []byte("User-agent: *\nDisallow: /private/\n"), nil
			},
		}
		cache := crawl.NewExclusionCache(source, robotstxt.NewSubstringParser(), nil)

		rules := cache.RulesFor(context.Background(), "https", "example.com")
		again := cache.RulesFor(context.Background(), "https", "example.com")

		assert.Equal(t, []string{"example.com/private/"}, rules.Disallowed())
		assert.Equal(t, rules, again)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, 1, cache.Hosts())
	})

	t.Run("caches an empty rule set", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		source := &mock.RobotsSource{
			FetchRobotsFn: func(context.Context, string, string) ([]byte, error) {
				calls.Add(1)
				return []byte("User-agent: *\n"), nil
			},
		}
		cache := crawl.NewExclusionCache(source, robotstxt.NewSubstringParser(), nil)

		cache.RulesFor(context.Background(), "http", "example.com")
		rules := cache.RulesFor(context.Background(), "http", "example.com")

		assert.Empty(t, rules.Disallowed())
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("fails open and does not retry when source is unavailable", func(t *testing.T) {
		t.Parallel()

		core, logs := observer.New(zapcore.WarnLevel)
		var calls atomic.Int32
		source := &mock.RobotsSource{
			FetchRobotsFn: func(context.Context, string, string) ([]byte, error) {
				calls.Add(1)
				return nil, errors.New("connection refused")
			},
		}
		cache := crawl.NewExclusionCache(source, robotstxt.NewSubstringParser(), zap.New(core))

		rules := cache.RulesFor(context.Background(), "http", "down.example.com")
		cache.RulesFor(context.Background(), "http", "down.example.com")

		assert.False(t, rules.Excludes("http://down.example.com/private/"))
		assert.False(t, cache.IsExcluded("down.example.com", "http://down.example.com/private/"))
		assert.Equal(t, int32(1), calls.Load())
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "down.example.com", logs.All()[0].ContextMap()["host"])
	})

	t.Run("missing robots.txt is not a warning", func(t *testing.T) {
		t.Parallel()

		core, logs := observer.New(zapcore.WarnLevel)
		cache := crawl.NewExclusionCache(robotsSource(nil), robotstxt.NewSubstringParser(), zap.New(core))

		rules := cache.RulesFor(context.Background(), "http", "example.com")

		assert.Empty(t, rules.Disallowed())
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("fails open when rules cannot be parsed", func(t *testing.T) {
		t.Parallel()

		parser := &mock.RobotsParser{
			ParseFn: func(string, []byte) (bfscrawl.ExclusionRules, error) {
				return nil, bfscrawl.Errorf(bfscrawl.EINVALID, "garbage")
			},
		}
		cache := crawl.NewExclusionCache(robotsSource(map[string]string{"example.com": "\x00"}), parser, nil)

		rules := cache.RulesFor(context.Background(), "http", "example.com")

		assert.False(t, rules.Excludes("http://example.com/anything"))
		assert.Equal(t, 1, cache.Hosts())
	})

	t.Run("concurrent first lookups fetch once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		source := &mock.RobotsSource{
			FetchRobotsFn: func(context.Context, string, string) ([]byte, error) {
				calls.Add(1)
				<-release
				return []byte("Disallow: /x\n"), nil
			},
		}
		cache := crawl.NewExclusionCache(source, robotstxt.NewSubstringParser(), nil)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cache.RulesFor(context.Background(), "http", "example.com")
			}()
		}
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		assert.True(t, cache.IsExcluded("example.com", "http://example.com/x/y"))
	})
}

func TestExclusionCache_IsExcluded(t *testing.T) {
	t.Parallel()

	cache := crawl.NewExclusionCache(robotsSource(map[string]string{
		"example.com": "User-agent: *\nDisallow: /Private/\n",
	}), robotstxt.NewSubstringParser(), nil)

	assert.False(t, cache.IsExcluded("example.com", "http://example.com/private/page"), "rules are loaded lazily")

	cache.RulesFor(context.Background(), "http", "example.com")

	assert.True(t, cache.IsExcluded("example.com", "http://example.com/private/page"))
	assert.False(t, cache.IsExcluded("example.com", "http://example.com/public/page"))
	assert.False(t, cache.IsExcluded("other.com", "http://example.com/private/page"))
}

func TestExclusionCache_IsExcluded_delegates_to_rules(t *testing.T) {
	t.Parallel()

	var targets []string
	parser := &mock.RobotsParser{
		ParseFn: func(host string, _ []byte) (bfscrawl.ExclusionRules, error) {
			return &mock.ExclusionRules{
				ExcludesFn: func(target string) bool {
					targets = append(targets, target)
					return target == "http://"+host+"/blocked"
				},
				DisallowedFn: func() []string { return []string{host + "/blocked"} },
			}, nil
		},
	}
	cache := crawl.NewExclusionCache(robotsSource(map[string]string{"example.com": "ignored"}), parser, nil)

	rules := cache.RulesFor(context.Background(), "http", "example.com")

	assert.Equal(t, []string{"example.com/blocked"}, rules.Disallowed())
	assert.True(t, cache.IsExcluded("example.com", "http://example.com/blocked"))
	assert.False(t, cache.IsExcluded("example.com", "http://example.com/open"))
	assert.Equal(t, []string{"http://example.com/blocked", "http://example.com/open"}, targets)
}

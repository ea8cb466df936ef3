package bfscrawl_test

import (
	"testing"
	"time"

	"github.com/fwojciec/bfscrawl"
	"github.com/stretchr/testify/assert"
)

func validConfig() bfscrawl.Config {
	return bfscrawl.Config{
		OutputFile:            "crawl.txt",
		MaxURLsToVisit:        10,
		MaxURLsToExtract:      100,
		SeedURL:               "https://example.com/",
		HTTPConnectionTimeout: 5000,
		AllowedDomains:        []string{"example.com"},
		ExclusionMatching:     bfscrawl.MatchSubstring,
		Concurrency:           1,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *bfscrawl.Config)
		ok     bool
	}{
		{name: "valid", modify: func(*bfscrawl.Config) {}, ok: true},
		{name: "zero limits are allowed", modify: func(c *bfscrawl.Config) {
			c.MaxURLsToVisit = 0
			c.MaxURLsToExtract = 0
		}, ok: true},
		{name: "missing output file", modify: func(c *bfscrawl.Config) { c.OutputFile = "" }},
		{name: "missing seed", modify: func(c *bfscrawl.Config) { c.SeedURL = "" }},
		{name: "negative visit limit", modify: func(c *bfscrawl.Config) { c.MaxURLsToVisit = -1 }},
		{name: "negative extract limit", modify: func(c *bfscrawl.Config) { c.MaxURLsToExtract = -1 }},
		{name: "zero timeout", modify: func(c *bfscrawl.Config) { c.HTTPConnectionTimeout = 0 }},
		{name: "blank domains", modify: func(c *bfscrawl.Config) { c.AllowedDomains = []string{" ", ","} }},
		{name: "unknown matching", modify: func(c *bfscrawl.Config) { c.ExclusionMatching = "regex" }},
		{name: "zero concurrency", modify: func(c *bfscrawl.Config) { c.Concurrency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, bfscrawl.EINVALID, bfscrawl.ErrorCode(err))
		})
	}
}

func TestConfig_Domains(t *testing.T) {
	t.Parallel()

	cfg := bfscrawl.Config{AllowedDomains: []string{" example.com ", "docs.example.org,, test.io"}}

	assert.Equal(t, []string{"example.com", "docs.example.org", "test.io"}, cfg.Domains())
}

func TestConfig_Timeout(t *testing.T) {
	t.Parallel()

	cfg := bfscrawl.Config{HTTPConnectionTimeout: 1500}

	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout())
}

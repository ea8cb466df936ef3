package bfscrawl

import (
	"strings"
	"time"
)

// Exclusion matching modes.
const (
	// MatchSubstring excludes a URL when it contains any cached
	// host+path rule string.
	MatchSubstring = "substring"

	// MatchStandard applies robots.txt group semantics for the user agent.
	MatchStandard = "standard"
)

// DefaultUserAgent is sent on robots.txt, probe and page requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1; WOW64) Chrome/23.0.1271.95 Safari/537.11"

// Config holds the process-wide crawl settings. It is loaded once at
// startup and read-only afterwards.
type Config struct {
	OutputFile            string   `mapstructure:"output_file"`
	MaxURLsToVisit        int      `mapstructure:"max_urls_to_visit"`
	MaxURLsToExtract      int      `mapstructure:"max_urls_to_extract"`
	SeedURL               string   `mapstructure:"seed_url"`
	HTTPConnectionTimeout int      `mapstructure:"http_connection_timeout"` // milliseconds
	AllowedDomains        []string `mapstructure:"allowed_domains"`

	UserAgent         string `mapstructure:"user_agent"`
	ExclusionMatching string `mapstructure:"exclusion_matching"`
	Concurrency       int    `mapstructure:"concurrency"`
	OutputDB          string `mapstructure:"output_db"`
	MetricsFile       string `mapstructure:"metrics_file"`
	LogLevel          string `mapstructure:"log_level"`
	LogDevelopment    bool   `mapstructure:"log_development"`
}

// Validate returns an error if the configuration cannot start a crawl.
func (c *Config) Validate() error {
	if c.OutputFile == "" {
		return Errorf(EINVALID, "output file required")
	}
	if c.SeedURL == "" {
		return Errorf(EINVALID, "seed URL required")
	}
	if c.MaxURLsToVisit < 0 {
		return Errorf(EINVALID, "max URLs to visit must not be negative: %d", c.MaxURLsToVisit)
	}
	if c.MaxURLsToExtract < 0 {
		return Errorf(EINVALID, "max URLs to extract must not be negative: %d", c.MaxURLsToExtract)
	}
	if c.HTTPConnectionTimeout <= 0 {
		return Errorf(EINVALID, "HTTP connection timeout must be positive: %d", c.HTTPConnectionTimeout)
	}
	if len(c.Domains()) == 0 {
		return Errorf(EINVALID, "at least one allowed domain required")
	}
	switch c.ExclusionMatching {
	case MatchSubstring, MatchStandard:
	default:
		return Errorf(EINVALID, "unknown exclusion matching mode %q", c.ExclusionMatching)
	}
	if c.Concurrency < 1 {
		return Errorf(EINVALID, "concurrency must be at least 1: %d", c.Concurrency)
	}
	return nil
}

// Timeout returns the HTTP connection timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPConnectionTimeout) * time.Millisecond
}

// Domains returns the allowed domains with surrounding whitespace removed.
// Entries may themselves hold comma-separated lists.
func (c *Config) Domains() []string {
	var domains []string
	for _, entry := range c.AllowedDomains {
		for _, d := range strings.Split(entry, ",") {
			if d = strings.TrimSpace(d); d != "" {
				domains = append(domains, d)
			}
		}
	}
	return domains
}

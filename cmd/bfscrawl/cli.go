package main

import (
	"time"

	"github.com/fwojciec/bfscrawl"
	"github.com/fwojciec/bfscrawl/viper"
	bfszap "github.com/fwojciec/bfscrawl/zap"
	"go.uber.org/zap"
)

// CLI defines the command-line interface structure for Kong.
// Flags override values from the config file and the environment.
type CLI struct {
	ConfigFile     string        `name:"config" short:"c" help:"Config file (KEY=VALUE properties, or yaml/json/toml). Defaults to resources/crawler.properties if present."`
	Seed           string        `help:"Seed URL (SEED_URL)"`
	Output         string        `short:"o" help:"Output log file, truncated at start (OUTPUT_FILE)"`
	MaxVisit       int           `default:"-1" help:"Maximum URLs to visit, inclusive (MAX_URLS_TO_VISIT)"`
	MaxExtract     int           `default:"-1" help:"Maximum URLs to extract, inclusive (MAX_URLS_TO_EXTRACT)"`
	Timeout        time.Duration `help:"HTTP connection timeout, e.g. 5s (HTTP_CONNECTION_TIMEOUT)"`
	AllowedDomain  []string      `name:"allowed-domain" short:"d" help:"Allowed domain, repeatable (ALLOWED_DOMAINS)"`
	Concurrency    int           `help:"Pages fetched in parallel within a level (CONCURRENCY)"`
	OutputDB       string        `name:"output-db" help:"Also record the crawl in this SQLite database (OUTPUT_DB)"`
	MetricsFile    string        `help:"Write Prometheus metrics to this file when done (METRICS_FILE)"`
	StandardRobots bool          `help:"Match robots.txt rules with standard group semantics instead of substring containment"`
	Verbose        bool          `short:"v" help:"Enable debug logging"`
}

// Config loads the configuration and applies flag overrides.
func (c *CLI) Config() (*bfscrawl.Config, error) {
	cfg, err := viper.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	c.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) apply(cfg *bfscrawl.Config) {
	if c.Seed != "" {
		cfg.SeedURL = c.Seed
	}
	if c.Output != "" {
		cfg.OutputFile = c.Output
	}
	if c.MaxVisit >= 0 {
		cfg.MaxURLsToVisit = c.MaxVisit
	}
	if c.MaxExtract >= 0 {
		cfg.MaxURLsToExtract = c.MaxExtract
	}
	if c.Timeout > 0 {
		cfg.HTTPConnectionTimeout = int(c.Timeout / time.Millisecond)
	}
	if len(c.AllowedDomain) > 0 {
		cfg.AllowedDomains = c.AllowedDomain
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.OutputDB != "" {
		cfg.OutputDB = c.OutputDB
	}
	if c.MetricsFile != "" {
		cfg.MetricsFile = c.MetricsFile
	}
	if c.StandardRobots {
		cfg.ExclusionMatching = bfscrawl.MatchStandard
	}
	if c.Verbose {
		cfg.LogLevel = "debug"
	}
}

func newLogger(cfg *bfscrawl.Config) (*zap.Logger, error) {
	return bfszap.NewLogger(cfg.LogDevelopment, cfg.LogLevel)
}

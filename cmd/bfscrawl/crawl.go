package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/bfscrawl"
	"github.com/fwojciec/bfscrawl/crawl"
	"github.com/fwojciec/bfscrawl/fs"
	"github.com/fwojciec/bfscrawl/goquery"
	bfshttp "github.com/fwojciec/bfscrawl/http"
	"github.com/fwojciec/bfscrawl/prometheus"
	"github.com/fwojciec/bfscrawl/robotstxt"
	"github.com/fwojciec/bfscrawl/sqlite"
	"github.com/fwojciec/bfscrawl/whatwg"
	bfszap "github.com/fwojciec/bfscrawl/zap"
	"go.uber.org/zap"
)

// runCrawl wires the collaborators described by cfg, runs one crawl and
// prints a summary line to stdout.
func runCrawl(ctx context.Context, cfg *bfscrawl.Config, logger *zap.Logger, stdout io.Writer) (err error) {
	logger.Info("starting crawl",
		zap.String("seed", cfg.SeedURL),
		zap.Strings("allowed_domains", cfg.Domains()),
		zap.Int("max_visit", cfg.MaxURLsToVisit),
		zap.Int("max_extract", cfg.MaxURLsToExtract),
		zap.String("exclusion_matching", cfg.ExclusionMatching),
	)

	// Truncated before the seed is checked: a rejected seed leaves an empty log.
	out, err := fs.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", cfg.OutputFile, err)
	}
	sinks := crawl.MultiSink{out}

	var db *sqlite.DB
	var dbSink *sqlite.Sink
	if cfg.OutputDB != "" {
		db = sqlite.NewDB(cfg.OutputDB)
		if err := db.Open(); err != nil {
			_ = out.Close()
			return fmt.Errorf("failed to open database at %q: %w", cfg.OutputDB, err)
		}
		defer db.Close()

		if dbSink, err = sqlite.NewSink(ctx, db, cfg.SeedURL); err != nil {
			_ = out.Close()
			return err
		}
		sinks = append(sinks, dbSink)
	}
	sink := bfszap.NewLoggingSink(sinks, logger)
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	opts := []bfshttp.Option{
		bfshttp.WithTimeout(cfg.Timeout()),
		bfshttp.WithUserAgent(cfg.UserAgent),
	}

	var parser bfscrawl.RobotsParser = robotstxt.NewSubstringParser()
	if cfg.ExclusionMatching == bfscrawl.MatchStandard {
		parser = robotstxt.NewStandardParser(cfg.UserAgent)
	}

	metrics := prometheus.NewMetrics()

	driver := &crawl.Driver{
		MaxVisit:      cfg.MaxURLsToVisit,
		MaxExtract:    cfg.MaxURLsToExtract,
		Concurrency:   cfg.Concurrency,
		Fetcher:       bfszap.NewLoggingFetcher(bfshttp.NewFetcher(goquery.NewLinkExtractor(), opts...), logger),
		Canonicalizer: whatwg.NewCanonicalizer(),
		Probe:         bfszap.NewLoggingProbe(bfshttp.NewProbe(opts...), logger),
		RobotsSource:  bfszap.NewLoggingRobotsSource(bfshttp.NewRobotsSource(opts...), logger),
		RobotsParser:  parser,
		Domains:       cfg.Domains(),
		Sink:          sink,
		Observer:      metrics,
		Logger:        logger,
	}

	stats, runErr := driver.Run(ctx, cfg.SeedURL)

	if dbSink != nil {
		if err := recordRun(context.WithoutCancel(ctx), db, dbSink, stats, stdout); err != nil {
			logger.Error("failed to record run outcome", zap.String("path", cfg.OutputDB), zap.Error(err))
		}
	}
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	fmt.Fprintf(stdout, "%s: visited=%d extracted=%d levels=%d fetch_failures=%d\n",
		stats.State, stats.Visited, stats.Extracted, stats.Levels, stats.FetchFailures)

	if runErr != nil {
		return fmt.Errorf("crawl aborted: %w", runErr)
	}
	if stats.SeedRejected != "" {
		return bfscrawl.Errorf(bfscrawl.EINVALID, "seed URL %q unusable: %s", cfg.SeedURL, stats.SeedRejected)
	}
	return nil
}

// recordRun stores the final state of the run and prints what the
// database now holds for it.
func recordRun(ctx context.Context, db *sqlite.DB, sink *sqlite.Sink, stats *crawl.Stats, stdout io.Writer) error {
	if err := sink.Finish(ctx, stats.State.String(), stats.Visited, stats.Extracted); err != nil {
		return err
	}
	run, err := db.FindRunByID(ctx, sink.RunID())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "run %s: state=%s visited=%d extracted=%d duration=%s\n",
		run.ID, run.State, run.Visited, run.Extracted, run.FinishedAt.Sub(run.StartedAt))
	return nil
}

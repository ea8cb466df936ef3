package zap

import (
	"context"
	"time"

	"github.com/fwojciec/bfscrawl"
	"go.uber.org/zap"
)

// Ensure LoggingFetcher implements bfscrawl.Fetcher.
var _ bfscrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   bfscrawl.Fetcher
	logger *zap.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next bfscrawl.Fetcher, logger *zap.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *bfscrawl.Page, err error) {
	defer func(begin time.Time) {
		var links int
		if page != nil {
			links = len(page.Links)
		}
		f.logger.Debug("fetch",
			zap.String("url", url),
			zap.Int("links", links),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Ensure LoggingProbe implements bfscrawl.HTMLProbe.
var _ bfscrawl.HTMLProbe = (*LoggingProbe)(nil)

// LoggingProbe wraps an HTMLProbe with debug logging.
type LoggingProbe struct {
	next   bfscrawl.HTMLProbe
	logger *zap.Logger
}

// NewLoggingProbe creates a new LoggingProbe.
func NewLoggingProbe(next bfscrawl.HTMLProbe, logger *zap.Logger) *LoggingProbe {
	return &LoggingProbe{next: next, logger: logger}
}

// IsHTML delegates to the wrapped probe and logs the operation.
func (p *LoggingProbe) IsHTML(ctx context.Context, url string) (ok bool, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("probe",
			zap.String("url", url),
			zap.Bool("html", ok),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
	}(time.Now())
	return p.next.IsHTML(ctx, url)
}

package zap

import (
	"context"
	"time"

	"github.com/fwojciec/bfscrawl"
	"go.uber.org/zap"
)

// Ensure LoggingRobotsSource implements bfscrawl.RobotsSource.
var _ bfscrawl.RobotsSource = (*LoggingRobotsSource)(nil)

// LoggingRobotsSource wraps a RobotsSource with logging.
type LoggingRobotsSource struct {
	next   bfscrawl.RobotsSource
	logger *zap.Logger
}

// NewLoggingRobotsSource creates a new LoggingRobotsSource.
func NewLoggingRobotsSource(next bfscrawl.RobotsSource, logger *zap.Logger) *LoggingRobotsSource {
	return &LoggingRobotsSource{next: next, logger: logger}
}

// FetchRobots delegates to the wrapped source and logs the operation.
func (s *LoggingRobotsSource) FetchRobots(ctx context.Context, scheme, host string) (body []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("robots.txt",
			zap.String("scheme", scheme),
			zap.String("host", host),
			zap.Int("bytes", len(body)),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
	}(time.Now())
	return s.next.FetchRobots(ctx, scheme, host)
}

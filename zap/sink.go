package zap

import (
	"context"

	"github.com/fwojciec/bfscrawl"
	"go.uber.org/zap"
)

// Ensure LoggingSink implements bfscrawl.Sink.
var _ bfscrawl.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink and logs every record at debug level and every
// write failure at error level.
type LoggingSink struct {
	next   bfscrawl.Sink
	logger *zap.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next bfscrawl.Sink, logger *zap.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

func (s *LoggingSink) Visited(ctx context.Context, rec bfscrawl.Record) error {
	err := s.next.Visited(ctx, rec)
	s.log("visited", rec, err)
	return err
}

func (s *LoggingSink) Discovered(ctx context.Context, rec bfscrawl.Record) error {
	err := s.next.Discovered(ctx, rec)
	s.log("discovered", rec, err)
	return err
}

func (s *LoggingSink) Close() error {
	err := s.next.Close()
	if err != nil {
		s.logger.Error("close output", zap.Error(err))
	}
	return err
}

func (s *LoggingSink) log(kind string, rec bfscrawl.Record, err error) {
	fields := []zap.Field{
		zap.String("url", rec.URL),
		zap.Int("level", rec.Level),
	}
	if err != nil {
		s.logger.Error("write "+kind+" record", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Debug(kind, fields...)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/flexlist"
)

// Ensure LoggingPageSource implements flexlist.PageSource.
var _ flexlist.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource with logging.
type LoggingPageSource struct {
	next   flexlist.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next flexlist.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// FindSource delegates to the wrapped source and logs the operation.
func (s *LoggingPageSource) FindSource(ctx context.Context, name string) (source string, err error) {
	defer func(begin time.Time) {
		s.logger.InfoContext(ctx, "find source",
			"page", name,
			"bytes", len(source),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSource(ctx, name)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/flexlist"
)

// Ensure LoggingExtractor implements flexlist.Extractor.
var _ flexlist.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   flexlist.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next flexlist.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation. Each
// trail step is logged at debug level.
func (e *LoggingExtractor) Extract(ctx context.Context, source string) (ext *flexlist.Extraction, err error) {
	defer func(begin time.Time) {
		rows, columns := 0, 0
		if ext != nil {
			for _, step := range ext.Trail {
				e.logger.DebugContext(ctx, "extract step", "step", step)
			}
			if ext.Dataset != nil {
				rows, columns = len(ext.Dataset.Rows), len(ext.Dataset.Columns)
			}
		}
		e.logger.InfoContext(ctx, "extract",
			"bytes", len(source),
			"columns", columns,
			"rows", rows,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, source)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/flexlist"
)

// Ensure LoggingDatasetCache implements flexlist.DatasetCache.
var _ flexlist.DatasetCache = (*LoggingDatasetCache)(nil)

// LoggingDatasetCache wraps a DatasetCache with debug logging.
type LoggingDatasetCache struct {
	next   flexlist.DatasetCache
	logger *slog.Logger
}

// NewLoggingDatasetCache creates a new LoggingDatasetCache.
func NewLoggingDatasetCache(next flexlist.DatasetCache, logger *slog.Logger) *LoggingDatasetCache {
	return &LoggingDatasetCache{next: next, logger: logger}
}

// FindDataset delegates to the wrapped cache and logs hits and misses.
func (c *LoggingDatasetCache) FindDataset(ctx context.Context, hash string) (ds *flexlist.Dataset, err error) {
	defer func(begin time.Time) {
		c.logger.DebugContext(ctx, "cache lookup",
			"hash", hash,
			"hit", err == nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.FindDataset(ctx, hash)
}

// SaveDataset delegates to the wrapped cache and logs the operation.
func (c *LoggingDatasetCache) SaveDataset(ctx context.Context, hash string, ds *flexlist.Dataset) (err error) {
	defer func(begin time.Time) {
		c.logger.DebugContext(ctx, "cache save",
			"hash", hash,
			"rows", len(ds.Rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SaveDataset(ctx, hash, ds)
}

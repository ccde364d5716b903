package extract

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/flexlist"
)

var _ flexlist.Extractor = (*CachedExtractor)(nil)

// cacheVersion is mixed into every key so that a change to extraction
// rules invalidates stored datasets.
const cacheVersion = "flexlist/1\x00"

// CachedExtractor wraps an Extractor with a dataset cache keyed by a hash
// of the page source. Only successful extractions are stored.
type CachedExtractor struct {
	Next  flexlist.Extractor
	Cache flexlist.DatasetCache
}

// SourceHash returns the cache key of source.
func SourceHash(source string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(cacheVersion+source))
}

// Extract returns the cached dataset for source, or extracts and stores it.
func (c *CachedExtractor) Extract(ctx context.Context, source string) (*flexlist.Extraction, error) {
	hash := SourceHash(source)

	ds, err := c.Cache.FindDataset(ctx, hash)
	if err == nil {
		return &flexlist.Extraction{
			Dataset: ds,
			Trail:   []string{fmt.Sprintf("dataset loaded from cache (%s)", hash)},
		}, nil
	} else if flexlist.ErrorCode(err) != flexlist.ENOTFOUND {
		return &flexlist.Extraction{Trail: []string{}}, fmt.Errorf("find cached dataset: %w", err)
	}

	res, err := c.Next.Extract(ctx, source)
	if err != nil {
		return res, err
	}
	if err := c.Cache.SaveDataset(ctx, hash, res.Dataset); err != nil {
		return res, fmt.Errorf("save cached dataset: %w", err)
	}
	res.Trail = append(res.Trail, fmt.Sprintf("dataset cached (%s)", hash))
	return res, nil
}

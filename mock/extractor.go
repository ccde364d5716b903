package mock

import (
	"context"

	"github.com/fwojciec/flexlist"
)

// Compile-time interface verification.
var (
	_ flexlist.Renderer     = (*Renderer)(nil)
	_ flexlist.RegionParser = (*RegionParser)(nil)
	_ flexlist.Extractor    = (*Extractor)(nil)
	_ flexlist.DatasetCache = (*DatasetCache)(nil)
)

// Renderer is a mock implementation of flexlist.Renderer.
type Renderer struct {
	RenderFn func(source string) (string, error)
}

func (r *Renderer) Render(source string) (string, error) {
	return r.RenderFn(source)
}

// RegionParser is a mock implementation of flexlist.RegionParser.
type RegionParser struct {
	ParseConfigFn func(fragment string) (*flexlist.Config, error)
	ParseDataFn   func(fragment string, columns []flexlist.Column) (*flexlist.Table, error)
}

func (p *RegionParser) ParseConfig(fragment string) (*flexlist.Config, error) {
	return p.ParseConfigFn(fragment)
}

func (p *RegionParser) ParseData(fragment string, columns []flexlist.Column) (*flexlist.Table, error) {
	return p.ParseDataFn(fragment, columns)
}

// Extractor is a mock implementation of flexlist.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, source string) (*flexlist.Extraction, error)
}

func (e *Extractor) Extract(ctx context.Context, source string) (*flexlist.Extraction, error) {
	return e.ExtractFn(ctx, source)
}

// DatasetCache is a mock implementation of flexlist.DatasetCache.
type DatasetCache struct {
	FindDatasetFn func(ctx context.Context, hash string) (*flexlist.Dataset, error)
	SaveDatasetFn func(ctx context.Context, hash string, ds *flexlist.Dataset) error
}

func (c *DatasetCache) FindDataset(ctx context.Context, hash string) (*flexlist.Dataset, error) {
	return c.FindDatasetFn(ctx, hash)
}

func (c *DatasetCache) SaveDataset(ctx context.Context, hash string, ds *flexlist.Dataset) error {
	return c.SaveDatasetFn(ctx, hash, ds)
}

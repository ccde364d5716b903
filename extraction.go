package flexlist

import "context"

// Config is the parsed configuration region.
type Config struct {
	Settings Settings
	Columns  []Column
}

// Table is the parsed data region. Headers are the label cells in document
// order; each row maps a column key to the matched cell's inner markup.
type Table struct {
	Headers []string
	Rows    []Row
}

// RegionParser parses the two regions located in a rendered page.
type RegionParser interface {
	// ParseConfig parses the configuration region into settings and columns.
	// Malformed rows are skipped.
	ParseConfig(fragment string) (*Config, error)

	// ParseData parses the data region, joining header labels to columns
	// case-insensitively. Cells without a matching column and rows with no
	// populated key are dropped.
	ParseData(fragment string, columns []Column) (*Table, error)
}

// Renderer turns wiki page source into HTML.
type Renderer interface {
	Render(source string) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(source string) (string, error)

// Render calls f(source).
func (f RendererFunc) Render(source string) (string, error) {
	return f(source)
}

// PassthroughRenderer is a Renderer for sources that are already HTML.
var PassthroughRenderer Renderer = RendererFunc(func(source string) (string, error) {
	return source, nil
})

// Extraction is the outcome of one extraction run. Trail lists the steps
// completed in order and is populated on failure as well.
type Extraction struct {
	Dataset *Dataset
	Trail   []string
}

// Extractor turns page source into a dataset.
type Extractor interface {
	// Extract renders source and parses both regions. On failure it returns
	// a non-nil Extraction holding the trail up to the failed step, along
	// with an EEMPTYSOURCE, EMISSINGCONFIG or EMISSINGDATA error.
	Extract(ctx context.Context, source string) (*Extraction, error)
}

// DatasetCache stores extracted datasets keyed by a hash of their source.
type DatasetCache interface {
	// FindDataset returns the cached dataset.
	// Returns ENOTFOUND if no dataset is stored under hash.
	FindDataset(ctx context.Context, hash string) (*Dataset, error)

	// SaveDataset stores ds under hash, replacing any previous entry.
	SaveDataset(ctx context.Context, hash string, ds *Dataset) error
}

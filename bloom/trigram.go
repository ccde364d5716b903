package bloom

import "github.com/fwojciec/flexlist"

var (
	_ flexlist.SearchPrefilterBuilder = (*TrigramIndexBuilder)(nil)
	_ flexlist.SearchPrefilter        = (*TrigramIndex)(nil)
)

// DefaultFalsePositiveRate is the per-row false positive rate used by
// NewTrigramIndexBuilder.
const DefaultFalsePositiveRate = 0.01

// TrigramIndexBuilder implements flexlist.SearchPrefilterBuilder.
type TrigramIndexBuilder struct {
	fpRate float64
}

// NewTrigramIndexBuilder creates a builder with the default false positive
// rate.
func NewTrigramIndexBuilder() *TrigramIndexBuilder {
	return &TrigramIndexBuilder{fpRate: DefaultFalsePositiveRate}
}

// BuildPrefilter indexes the trigrams of every cell, one filter per row.
func (b *TrigramIndexBuilder) BuildPrefilter(rows [][]string) flexlist.SearchPrefilter {
	idx := &TrigramIndex{rows: make([]*RowFilter, len(rows))}
	for r, cells := range rows {
		idx.rows[r] = NewRowFilter(cells, b.fpRate)
	}
	return idx
}

// TrigramIndex rules out rows that lack any trigram of a query.
type TrigramIndex struct {
	rows []*RowFilter
}

// MayContain reports whether row might contain query. Unknown rows pass.
func (idx *TrigramIndex) MayContain(row int, query string) bool {
	if row < 0 || row >= len(idx.rows) {
		return true
	}
	return idx.rows[row].MayContain(query)
}

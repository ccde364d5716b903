// Package bloom provides search prefilters backed by Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// RowFilter holds the trigrams of one row's cells.
type RowFilter struct {
	f *bloom.BloomFilter
}

// NewRowFilter creates a filter sized for the trigrams of cells and adds
// them. Trigrams never span two cells.
func NewRowFilter(cells []string, fpRate float64) *RowFilter {
	n := 0
	for _, c := range cells {
		n += len(c)
	}
	rf := &RowFilter{f: bloom.NewWithEstimates(uint(max(n, 1)), fpRate)}
	for _, c := range cells {
		for _, g := range Trigrams(c) {
			rf.f.AddString(g)
		}
	}
	return rf
}

// MayContain reports whether every trigram of query might be in the row.
// Queries shorter than three runes always pass.
func (rf *RowFilter) MayContain(query string) bool {
	for _, g := range Trigrams(query) {
		if !rf.f.TestString(g) {
			return false
		}
	}
	return true
}

// EstimatedTrigrams returns the approximate number of distinct trigrams in
// the row.
func (rf *RowFilter) EstimatedTrigrams() uint {
	return uint(rf.f.ApproximatedSize())
}

// Trigrams returns the overlapping three-rune substrings of s.
func Trigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}

package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/flexlist/bloom"
	"github.com/stretchr/testify/assert"
)

func TestRowFilter_MayContain(t *testing.T) {
	t.Parallel()

	t.Run("accepts substrings of any cell", func(t *testing.T) {
		t.Parallel()

		rf := bloom.NewRowFilter([]string{"yamanote", "品川駅"}, 0.01)

		assert.True(t, rf.MayContain("mano"))
		assert.True(t, rf.MayContain("品川駅"))
	})

	t.Run("does not join adjacent cells", func(t *testing.T) {
		t.Parallel()

		rf := bloom.NewRowFilter([]string{"abc", "xyz"}, 0.01)

		assert.False(t, rf.MayContain("bcxy"))
	})

	t.Run("passes queries under three runes", func(t *testing.T) {
		t.Parallel()

		rf := bloom.NewRowFilter([]string{"abc"}, 0.01)

		assert.True(t, rf.MayContain("qq"))
	})

	t.Run("handles empty rows", func(t *testing.T) {
		t.Parallel()

		rf := bloom.NewRowFilter(nil, 0.01)

		assert.Equal(t, uint(0), rf.EstimatedTrigrams())
		assert.False(t, rf.MayContain("abc"))
	})
}

func TestRowFilter_EstimatedTrigrams(t *testing.T) {
	t.Parallel()

	rf := bloom.NewRowFilter([]string{"abcde", "abc"}, 0.01)

	count := rf.EstimatedTrigrams()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestRowFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	cells := make([]string, 2000)
	for i := range cells {
		cells[i] = fmt.Sprintf("%05d", i)
	}
	rf := bloom.NewRowFilter(cells, 0.01)

	falsePositives := 0
	const probes = 5000
	for i := range probes {
		if rf.MayContain(fmt.Sprintf("q%dz", i)) {
			falsePositives++
		}
	}

	// Allow up to 3% for statistical variance.
	assert.Less(t, float64(falsePositives)/probes, 0.03)
}

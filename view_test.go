package flexlist_test

import (
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/stretchr/testify/assert"
)

func TestNewViewState(t *testing.T) {
	t.Parallel()

	s := flexlist.NewViewState(flexlist.Settings{PaginationDefault: 50})

	assert.Equal(t, flexlist.PageSize(50), s.PageSize)
	assert.Equal(t, 1, s.Page)
	assert.Empty(t, s.Search)
	assert.Empty(t, s.Group)
	assert.Empty(t, s.Sort)
	assert.Empty(t, s.Filters)
}

func TestViewState_Clone(t *testing.T) {
	t.Parallel()

	s := flexlist.NewViewState(flexlist.DefaultSettings())
	s.Filters["color"] = []string{"red"}
	s.Sort = []flexlist.SortKey{{Key: "name", Dir: flexlist.Asc}}

	c := s.Clone()
	c.Filters["color"][0] = "blue"
	c.Filters["size"] = []string{"L"}
	c.Sort[0].Dir = flexlist.Desc

	assert.Equal(t, []string{"red"}, s.Filters["color"])
	assert.NotContains(t, s.Filters, "size")
	assert.Equal(t, flexlist.Asc, s.Sort[0].Dir)
}

func TestViewState_Accepts(t *testing.T) {
	t.Parallel()

	s := flexlist.ViewState{Filters: map[string][]string{"color": {"red", "blue"}}}

	assert.True(t, s.Accepts("color", "blue"))
	assert.False(t, s.Accepts("color", "green"))
	assert.False(t, s.Accepts("size", "red"))
}

func TestViewState_SortDirection(t *testing.T) {
	t.Parallel()

	s := flexlist.ViewState{Sort: []flexlist.SortKey{{Key: "a", Dir: flexlist.Desc}}}

	dir, ok := s.SortDirection("a")
	assert.True(t, ok)
	assert.Equal(t, flexlist.Desc, dir)

	_, ok = s.SortDirection("b")
	assert.False(t, ok)
}

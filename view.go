package flexlist

import (
	"io"
	"slices"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKey is one entry of the user sort.
type SortKey struct {
	Key string    `json:"key"`
	Dir Direction `json:"dir"`
}

// GroupNone is the select value that disables grouping.
const GroupNone = "none"

// ViewState is the complete interactive state of one table view. States are
// values: every operation returns a new state and never mutates its input.
type ViewState struct {
	Search string `json:"search"`

	// Filters maps a column key to the accepted values. A missing or empty
	// set places no constraint on the column.
	Filters map[string][]string `json:"filters"`

	// Group is the grouping column key, or "" when rows are not grouped.
	Group string `json:"group"`

	// Sort lists the user sort keys, highest priority first.
	Sort []SortKey `json:"sort"`

	PageSize PageSize `json:"pageSize"`
	Page     int      `json:"page"`
}

// NewViewState returns the initial state for a dataset with settings.
func NewViewState(settings Settings) ViewState {
	return ViewState{
		Filters:  map[string][]string{},
		PageSize: settings.PaginationDefault,
		Page:     1,
	}
}

// Clone returns a deep copy of s.
func (s ViewState) Clone() ViewState {
	c := s
	c.Filters = make(map[string][]string, len(s.Filters))
	for k, v := range s.Filters {
		c.Filters[k] = slices.Clone(v)
	}
	c.Sort = slices.Clone(s.Sort)
	return c
}

// Accepts reports whether value is selected in the filter of key.
func (s ViewState) Accepts(key, value string) bool {
	return slices.Contains(s.Filters[key], value)
}

// SortDirection returns the direction of key in the user sort.
func (s ViewState) SortDirection(key string) (Direction, bool) {
	for _, k := range s.Sort {
		if k.Key == key {
			return k.Dir, true
		}
	}
	return "", false
}

// Action is a user input dispatched into a QueryEngine.
type Action interface {
	action()
}

// SearchAction replaces the free-text query.
type SearchAction struct {
	Query string
}

// ToggleFilterAction adds or removes one accepted value of a column.
type ToggleFilterAction struct {
	Key   string
	Value string
}

// SetGroupAction selects the grouping column. An empty key or GroupNone
// disables grouping.
type SetGroupAction struct {
	Key string
}

// ToggleSortAction cycles the sort of a column. Multi extends the current
// sort instead of replacing it.
type ToggleSortAction struct {
	Key   string
	Multi bool
}

// SetSortAction replaces the sort keys, first key highest priority. Keys
// naming unknown columns and repeated keys are dropped.
type SetSortAction struct {
	Keys []SortKey
}

// SetPageSizeAction changes the page size.
type SetPageSizeAction struct {
	Size PageSize
}

// SetPageAction jumps to a page.
type SetPageAction struct {
	Page int
}

func (SearchAction) action()       {}
func (ToggleFilterAction) action() {}
func (SetGroupAction) action()     {}
func (ToggleSortAction) action()   {}
func (SetSortAction) action()      {}
func (SetPageSizeAction) action()  {}
func (SetPageAction) action()      {}

// ViewRow is one rendered row. Group rows carry only a Label.
type ViewRow struct {
	Group bool   `json:"group,omitempty"`
	Label string `json:"label,omitempty"`

	// Index is the position of the row in the dataset.
	Index int `json:"index"`

	// Cells holds the raw markup and Text the stripped text, by column key.
	Cells Row               `json:"cells,omitempty"`
	Text  map[string]string `json:"text,omitempty"`
}

// View is the derived, paginated projection of a dataset under a state.
type View struct {
	Columns   []Column  `json:"columns"`
	Rows      []ViewRow `json:"rows"`
	Page      int       `json:"page"`
	PageCount int       `json:"pageCount"`
	PageSize  PageSize  `json:"pageSize"`

	// Visible counts rows passing search and filters; Total counts all rows.
	Visible int `json:"visible"`
	Total   int `json:"total"`
}

// QueryEngine derives views from a dataset. Implementations are pure: the
// same state always yields the same view, and no operation fails.
type QueryEngine interface {
	// Dispatch applies action to state and returns the new state.
	Dispatch(state ViewState, action Action) ViewState

	// View returns the visible page for state.
	View(state ViewState) *View

	// FilterOptions returns the distinct values offered in the filter of key,
	// in display order.
	FilterOptions(key string) []string
}

// TextExtractor converts a cell's markup into trimmed plain text.
type TextExtractor interface {
	Text(markup string) string
}

// SearchPrefilter rules rows out of a free-text search before the exact
// substring scan. It may report false positives but never false negatives.
type SearchPrefilter interface {
	MayContain(row int, query string) bool
}

// SearchPrefilterBuilder builds a prefilter over folded row texts, one slice
// of cell texts per row.
type SearchPrefilterBuilder interface {
	BuildPrefilter(rows [][]string) SearchPrefilter
}

// ViewExporter writes a view in an external format.
type ViewExporter interface {
	ExportView(w io.Writer, v *View) error
}

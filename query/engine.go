// Package query implements the interactive query engine: free-text
// search, value filters, multi-column sort, grouping and pagination over
// an extracted dataset.
package query

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/flexlist"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var _ flexlist.QueryEngine = (*Engine)(nil)

// GroupLabelEmpty labels the group of rows with an empty group value.
const GroupLabelEmpty = "N/A"

// DefaultLocale is the collation locale used when none is configured.
var DefaultLocale = language.Japanese

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the locale used for string collation.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

// WithPrefilter enables a search prefilter built over the folded row text.
func WithPrefilter(b flexlist.SearchPrefilterBuilder) Option {
	return func(e *Engine) {
		e.builder = b
	}
}

// Engine implements flexlist.QueryEngine over one dataset. The dataset is
// read once at construction; Dispatch and View never modify it.
type Engine struct {
	columns []flexlist.Column
	index   map[string]int
	rows    []flexlist.Row

	// Per row, per column: stripped text, case-folded text and, for CSV
	// columns, the comma-separated tokens.
	text   [][]string
	folded [][]string
	tokens [][][]string

	priority []int
	options  map[string][]string

	locale    language.Tag
	builder   flexlist.SearchPrefilterBuilder
	prefilter flexlist.SearchPrefilter
}

// New creates an Engine for ds. Cell markup is converted to text with tx.
func New(ds *flexlist.Dataset, tx flexlist.TextExtractor, opts ...Option) *Engine {
	e := &Engine{
		columns: slices.Clone(ds.Columns),
		index:   make(map[string]int, len(ds.Columns)),
		rows:    ds.Rows,
		locale:  DefaultLocale,
		options: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(e)
	}

	for i, col := range e.columns {
		e.index[col.Key] = i
	}

	fold := cases.Fold()
	e.text = make([][]string, len(e.rows))
	e.folded = make([][]string, len(e.rows))
	e.tokens = make([][][]string, len(e.rows))
	for r, row := range e.rows {
		e.text[r] = make([]string, len(e.columns))
		e.folded[r] = make([]string, len(e.columns))
		e.tokens[r] = make([][]string, len(e.columns))
		for c, col := range e.columns {
			t := tx.Text(row[col.Key])
			e.text[r][c] = t
			e.folded[r][c] = fold.String(t)
			if col.Caps.Has(flexlist.CapCSV) {
				e.tokens[r][c] = splitTokens(t)
			}
		}
	}

	if e.builder != nil {
		e.prefilter = e.builder.BuildPrefilter(e.folded)
	}

	for c, col := range e.columns {
		if col.Options.SortPriority != nil {
			e.priority = append(e.priority, c)
		}
	}
	slices.SortStableFunc(e.priority, func(a, b int) int {
		return cmp.Compare(*e.columns[a].Options.SortPriority, *e.columns[b].Options.SortPriority)
	})

	coll := collate.New(e.locale)
	for c := range e.columns {
		col := &e.columns[c]
		if !col.Caps.Has(flexlist.CapFilter) {
			continue
		}
		seen := make(map[string]bool)
		values := []string{}
		for r := range e.rows {
			for _, v := range e.cellValues(r, c) {
				if v == "" || seen[v] {
					continue
				}
				seen[v] = true
				values = append(values, v)
			}
		}
		slices.SortStableFunc(values, func(a, b string) int {
			return compareOptions(col, coll, a, b)
		})
		e.options[col.Key] = values
	}

	return e
}

// Columns returns the dataset columns in display order.
func (e *Engine) Columns() []flexlist.Column {
	return slices.Clone(e.columns)
}

// FilterOptions returns the distinct non-empty values of a filter column,
// in custom order if the column has one and by locale collation otherwise.
// CSV cells contribute each comma-separated token.
func (e *Engine) FilterOptions(key string) []string {
	return slices.Clone(e.options[key])
}

// Dispatch applies action to state and returns the new state. Actions that
// name unknown columns return an unchanged copy.
func (e *Engine) Dispatch(state flexlist.ViewState, action flexlist.Action) flexlist.ViewState {
	next := state.Clone()

	switch a := action.(type) {
	case flexlist.SearchAction:
		next.Search = a.Query
		next.Page = 1

	case flexlist.ToggleFilterAction:
		if _, ok := e.index[a.Key]; !ok {
			return next
		}
		values := next.Filters[a.Key]
		if i := slices.Index(values, a.Value); i >= 0 {
			values = slices.Delete(values, i, i+1)
		} else {
			values = append(values, a.Value)
		}
		if len(values) == 0 {
			delete(next.Filters, a.Key)
		} else {
			next.Filters[a.Key] = values
		}
		next.Page = 1

	case flexlist.SetGroupAction:
		if a.Key == "" || a.Key == flexlist.GroupNone {
			next.Group = ""
			return next
		}
		if c, ok := e.index[a.Key]; ok && e.columns[c].Caps.Has(flexlist.CapGroup) {
			next.Group = a.Key
		}

	case flexlist.ToggleSortAction:
		if _, ok := e.index[a.Key]; !ok {
			return next
		}
		if a.Multi {
			next.Sort = toggleMultiSort(next.Sort, a.Key)
		} else {
			next.Sort = toggleSingleSort(next.Sort, a.Key)
		}

	case flexlist.SetSortAction:
		next.Sort = nil
		for _, k := range a.Keys {
			if _, ok := e.index[k.Key]; !ok {
				continue
			}
			if _, ok := next.SortDirection(k.Key); ok {
				continue
			}
			if k.Dir != flexlist.Desc {
				k.Dir = flexlist.Asc
			}
			next.Sort = append(next.Sort, k)
		}

	case flexlist.SetPageSizeAction:
		if a.Size < flexlist.PageSizeAll {
			return next
		}
		next.PageSize = a.Size
		next.Page = 1

	case flexlist.SetPageAction:
		next.Page = clampPage(a.Page, pageCount(len(e.visible(next)), next.PageSize))
	}

	return next
}

// View returns the sorted, paginated rows visible under state. Group
// header rows are inserted before each run of equal group values on the
// page and do not count toward the page size.
func (e *Engine) View(state flexlist.ViewState) *flexlist.View {
	rows := e.visible(state)
	e.sort(rows, state)

	count := pageCount(len(rows), state.PageSize)
	page := clampPage(state.Page, count)
	start, end := pageBounds(len(rows), state.PageSize, page)

	v := &flexlist.View{
		Columns:   slices.Clone(e.columns),
		Rows:      []flexlist.ViewRow{},
		Page:      page,
		PageCount: count,
		PageSize:  state.PageSize,
		Visible:   len(rows),
		Total:     len(e.rows),
	}

	group, grouped := e.groupColumn(state)
	last := ""
	for i, r := range rows[start:end] {
		if grouped {
			label := e.text[r][group]
			if label == "" {
				label = GroupLabelEmpty
			}
			if i == 0 || label != last {
				v.Rows = append(v.Rows, flexlist.ViewRow{Group: true, Label: label, Index: -1})
				last = label
			}
		}
		text := make(map[string]string, len(e.columns))
		for c, col := range e.columns {
			text[col.Key] = e.text[r][c]
		}
		v.Rows = append(v.Rows, flexlist.ViewRow{
			Index: r,
			Cells: maps.Clone(e.rows[r]),
			Text:  text,
		})
	}

	return v
}

// visible returns the indices of rows passing the search and filters, in
// dataset order.
func (e *Engine) visible(state flexlist.ViewState) []int {
	query := cases.Fold().String(strings.TrimSpace(state.Search))

	type filter struct {
		col    int
		accept []string
	}
	var filters []filter
	for key, accept := range state.Filters {
		c, ok := e.index[key]
		if !ok || len(accept) == 0 {
			continue
		}
		filters = append(filters, filter{col: c, accept: accept})
	}

	rows := make([]int, 0, len(e.rows))
	for r := range e.rows {
		if query != "" && !e.matchesSearch(r, query) {
			continue
		}
		ok := true
		for _, f := range filters {
			if !e.matchesFilter(r, f.col, f.accept) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return rows
}

func (e *Engine) matchesSearch(r int, query string) bool {
	if e.prefilter != nil && !e.prefilter.MayContain(r, query) {
		return false
	}
	for _, t := range e.folded[r] {
		if strings.Contains(t, query) {
			return true
		}
	}
	return false
}

// matchesFilter reports whether any value of the cell is accepted.
func (e *Engine) matchesFilter(r, c int, accept []string) bool {
	for _, v := range e.cellValues(r, c) {
		if slices.Contains(accept, v) {
			return true
		}
	}
	return false
}

// cellValues returns the filterable values of a cell: its tokens for CSV
// columns, otherwise the whole text.
func (e *Engine) cellValues(r, c int) []string {
	if e.columns[c].Caps.Has(flexlist.CapCSV) {
		return e.tokens[r][c]
	}
	return []string{e.text[r][c]}
}

// sort orders rows by group value, then the user sort keys, then the
// priority columns. Ties keep dataset order.
func (e *Engine) sort(rows []int, state flexlist.ViewState) {
	type key struct {
		col  int
		sign int
	}
	var keys []key
	if c, ok := e.groupColumn(state); ok {
		keys = append(keys, key{col: c, sign: 1})
	}
	for _, s := range state.Sort {
		c, ok := e.index[s.Key]
		if !ok {
			continue
		}
		sign := 1
		if s.Dir == flexlist.Desc {
			sign = -1
		}
		keys = append(keys, key{col: c, sign: sign})
	}
	for _, c := range e.priority {
		keys = append(keys, key{col: c, sign: 1})
	}
	if len(keys) == 0 {
		return
	}

	coll := collate.New(e.locale)
	slices.SortStableFunc(rows, func(a, b int) int {
		for _, k := range keys {
			if r := compareValues(&e.columns[k.col], coll, e.text[a][k.col], e.text[b][k.col]); r != 0 {
				return r * k.sign
			}
		}
		return 0
	})
}

func (e *Engine) groupColumn(state flexlist.ViewState) (int, bool) {
	if state.Group == "" || state.Group == flexlist.GroupNone {
		return 0, false
	}
	c, ok := e.index[state.Group]
	if !ok || !e.columns[c].Caps.Has(flexlist.CapGroup) {
		return 0, false
	}
	return c, true
}

// toggleSingleSort replaces the sort with the key: ascending, unless it is
// already the sole ascending key, in which case descending.
func toggleSingleSort(sort []flexlist.SortKey, key string) []flexlist.SortKey {
	if len(sort) == 1 && sort[0].Key == key && sort[0].Dir == flexlist.Asc {
		return []flexlist.SortKey{{Key: key, Dir: flexlist.Desc}}
	}
	return []flexlist.SortKey{{Key: key, Dir: flexlist.Asc}}
}

// toggleMultiSort cycles the key within a multi-column sort: absent or
// descending becomes ascending at the highest priority, ascending is
// removed. Other keys keep their relative priority.
func toggleMultiSort(sort []flexlist.SortKey, key string) []flexlist.SortKey {
	i := slices.IndexFunc(sort, func(k flexlist.SortKey) bool { return k.Key == key })
	if i >= 0 {
		dir := sort[i].Dir
		sort = slices.Delete(sort, i, i+1)
		if dir == flexlist.Asc {
			return sort
		}
	}
	return slices.Insert(sort, 0, flexlist.SortKey{Key: key, Dir: flexlist.Asc})
}

func splitTokens(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// pageCount returns the number of pages for n rows, at least 1.
func pageCount(n int, size flexlist.PageSize) int {
	if size <= flexlist.PageSizeAll || n == 0 {
		return 1
	}
	return (n + int(size) - 1) / int(size)
}

func clampPage(page, count int) int {
	return max(1, min(page, count))
}

// pageBounds returns the half-open slice of rows shown on page.
func pageBounds(n int, size flexlist.PageSize, page int) (int, int) {
	if size <= flexlist.PageSizeAll {
		return 0, n
	}
	start := min((page-1)*int(size), n)
	end := min(start+int(size), n)
	return start, end
}

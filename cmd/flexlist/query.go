package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/flexlist"
)

// State applies the flags to the initial state of ds through engine.
// Unknown column keys are rejected.
func (f *ViewFlags) State(ds *flexlist.Dataset, engine flexlist.QueryEngine) (flexlist.ViewState, error) {
	state := flexlist.NewViewState(ds.Settings)

	if f.PageSize != "" {
		size, ok := flexlist.ParsePageSize(f.PageSize)
		if !ok {
			return state, flexlist.Errorf(flexlist.EINVALID, "invalid page size %q", f.PageSize)
		}
		state = engine.Dispatch(state, flexlist.SetPageSizeAction{Size: size})
	}

	if f.Search != "" {
		state = engine.Dispatch(state, flexlist.SearchAction{Query: f.Search})
	}

	for _, filter := range f.Filter {
		key, value, ok := strings.Cut(filter, "=")
		if !ok {
			return state, flexlist.Errorf(flexlist.EINVALID, "invalid filter %q, want key=value", filter)
		}
		if _, ok := ds.Column(key); !ok {
			return state, flexlist.Errorf(flexlist.EINVALID, "unknown column %q", key)
		}
		state = engine.Dispatch(state, flexlist.ToggleFilterAction{Key: key, Value: value})
	}

	if f.Group != "" {
		col, ok := ds.Column(f.Group)
		if f.Group != flexlist.GroupNone && (!ok || !col.Caps.Has(flexlist.CapGroup)) {
			return state, flexlist.Errorf(flexlist.EINVALID, "column %q cannot be grouped", f.Group)
		}
		state = engine.Dispatch(state, flexlist.SetGroupAction{Key: f.Group})
	}

	sort := make([]flexlist.SortKey, 0, len(f.Sort))
	for _, s := range f.Sort {
		key, dir, _ := strings.Cut(s, ":")
		if _, ok := ds.Column(key); !ok {
			return state, flexlist.Errorf(flexlist.EINVALID, "unknown column %q", key)
		}
		switch flexlist.Direction(strings.ToLower(dir)) {
		case "", flexlist.Asc:
			sort = append(sort, flexlist.SortKey{Key: key, Dir: flexlist.Asc})
		case flexlist.Desc:
			sort = append(sort, flexlist.SortKey{Key: key, Dir: flexlist.Desc})
		default:
			return state, flexlist.Errorf(flexlist.EINVALID, "invalid sort direction %q", dir)
		}
	}
	if len(sort) > 0 {
		state = engine.Dispatch(state, flexlist.SetSortAction{Keys: sort})
	}

	return engine.Dispatch(state, flexlist.SetPageAction{Page: f.Page}), nil
}

// loadView extracts page and derives the view selected by flags.
func loadView(deps *Dependencies, page string, flags *ViewFlags) (*flexlist.View, error) {
	ext, err := extractPage(deps, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return nil, err
	}

	engine := deps.NewEngine(ext.Dataset)
	state, err := flags.State(ext.Dataset, engine)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return nil, err
	}
	return engine.View(state), nil
}

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	view, err := loadView(deps, c.Name, &c.ViewFlags)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return writeTable(deps.Stdout, view)
}

// writeTable prints the text of each row in aligned columns followed by a
// summary line.
func writeTable(w io.Writer, v *flexlist.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	labels := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		labels[i] = col.Label
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	for _, row := range v.Rows {
		if row.Group {
			fmt.Fprintf(tw, "[%s]\n", row.Label)
			continue
		}
		cells := make([]string, len(v.Columns))
		for i, col := range v.Columns {
			cells[i] = strings.ReplaceAll(row.Text[col.Key], "\n", " ")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\npage %d/%d, %d of %d rows\n", v.Page, max(v.PageCount, 1), v.Visible, v.Total)
	return err
}

package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/flexlist"
	main "github.com/fwojciec/flexlist/cmd/flexlist"
	"github.com/fwojciec/flexlist/extract"
	"github.com/fwojciec/flexlist/goquery"
	"github.com/fwojciec/flexlist/mock"
	"github.com/fwojciec/flexlist/query"
	"github.com/fwojciec/flexlist/web"
)

const inventoryPage = `<div id="body">
<!-- DATATABLE_CONFIG_START -->
<p>pagination_options: 1,All<br />
pagination_default: All</p>
<table>
<tr><th>key</th><th>type</th><th>label</th><th>width</th><th>options</th></tr>
<tr><td>item</td><td>plain</td><td>Item</td><td>auto</td><td></td></tr>
<tr><td>state</td><td>filter-group</td><td>State</td><td>6em</td><td>order:new,used</td></tr>
</table>
<!-- DATATABLE_CONFIG_END -->
<!-- DATATABLE_DATA_START -->
<table>
<thead><tr><th>item</th><th>state</th></tr></thead>
<tbody>
<tr><td><a href="/lamp">Lamp</a></td><td>used</td></tr>
<tr><td>Desk</td><td>new</td></tr>
<tr><td>Chair</td><td>used</td></tr>
</tbody>
</table>
<!-- DATATABLE_DATA_END -->
</div>`

// testDeps returns dependencies extracting pages from an in-memory set of
// HTML sources.
func testDeps(t *testing.T, pages map[string]string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Sources: &mock.PageSource{
			FindSourceFn: func(_ context.Context, name string) (string, error) {
				source, ok := pages[name]
				if !ok {
					return "", flexlist.Errorf(flexlist.ENOTFOUND, "page %q not found", name)
				}
				return source, nil
			},
		},
		Extractor: &extract.Extractor{
			Renderer: flexlist.PassthroughRenderer,
			Parser:   goquery.NewParser(),
		},
		Shell: web.NewShell(),
		NewEngine: func(ds *flexlist.Dataset) flexlist.QueryEngine {
			return query.New(ds, goquery.NewStripper())
		},
	}
	return deps, stdout, stderr
}

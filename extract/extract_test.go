package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/extract"
	"github.com/fwojciec/flexlist/goldmark"
	"github.com/fwojciec/flexlist/goquery"
	"github.com/fwojciec/flexlist/mock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<div id="body">
<p>Inventory list</p>
<!-- DATATABLE_CONFIG_START -->
<p>pagination_options: 10,All<br />
pagination_default: 10</p>
<table>
<tr><th>key</th><th>type</th><th>label</th><th>width</th><th>options</th></tr>
<tr><td>item</td><td>plain</td><td>Item</td><td>auto</td><td></td></tr>
<tr><td>state</td><td>filter-group</td><td>State</td><td>6em</td><td>order:new,used</td></tr>
</table>
<!-- DATATABLE_CONFIG_END -->
<span class="noise"><!-- DATATABLE_DATA_START --></span>
<table>
<thead><tr><th>item</th><th>STATE</th></tr></thead>
<tbody>
<tr><td><a href="/lamp">Lamp</a></td><td>used</td></tr>
<tr><td>Desk</td><td>new</td></tr>
</tbody>
</table>
<!-- DATATABLE_DATA_END -->
</div>`

func newExtractor() *extract.Extractor {
	return &extract.Extractor{
		Renderer: flexlist.PassthroughRenderer,
		Parser:   goquery.NewParser(),
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts settings, columns and rows", func(t *testing.T) {
		t.Parallel()

		res, err := newExtractor().Extract(context.Background(), page)
		require.NoError(t, err)

		want := &flexlist.Dataset{
			Settings: flexlist.Settings{
				PaginationOptions: []flexlist.PageSize{10, flexlist.PageSizeAll},
				PaginationDefault: 10,
			},
			Columns: []flexlist.Column{
				{Key: "item", Label: "Item", Width: "auto"},
				{
					Key:     "state",
					Caps:    flexlist.CapFilter | flexlist.CapGroup,
					Label:   "State",
					Width:   "6em",
					Options: flexlist.ColumnOptions{Order: []string{"new", "used"}},
				},
			},
			Rows: []flexlist.Row{
				{"item": `<a href="/lamp">Lamp</a>`, "state": "used"},
				{"item": "Desk", "state": "new"},
			},
		}
		if diff := cmp.Diff(want, res.Dataset); diff != "" {
			t.Errorf("dataset mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{
			"source received (" + itoa(len(page)) + " bytes)",
			"html rendered (" + itoa(len(page)) + " bytes)",
			"config block found",
			"config parsed (2 columns, page size 10)",
			"data block found",
			"headers: item, STATE",
			"dataset built (2 rows)",
		}, res.Trail)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		x := newExtractor()
		first, err := x.Extract(context.Background(), page)
		require.NoError(t, err)
		second, err := x.Extract(context.Background(), page)
		require.NoError(t, err)

		assert.Empty(t, cmp.Diff(first.Dataset, second.Dataset))
	})

	t.Run("extracts markdown source through goldmark", func(t *testing.T) {
		t.Parallel()

		source := `#flexlist_config
pagination_default: 50

| key | type | label | width |
| --- | --- | --- | --- |
| city | group | City | auto |

#flexlist_endconfig
#flexlist_data

| City |
| --- |
| **Osaka** |
| Kyoto |

#flexlist_enddata
`
		x := &extract.Extractor{Renderer: goldmark.NewRenderer(), Parser: goquery.NewParser()}

		res, err := x.Extract(context.Background(), source)
		require.NoError(t, err)

		require.Len(t, res.Dataset.Columns, 1)
		assert.Equal(t, flexlist.PageSize(50), res.Dataset.Settings.PaginationDefault)
		assert.Equal(t, []flexlist.Row{{"city": "<strong>Osaka</strong>"}, {"city": "Kyoto"}}, res.Dataset.Rows)
	})

	t.Run("rejects empty source", func(t *testing.T) {
		t.Parallel()

		res, err := newExtractor().Extract(context.Background(), "")

		assert.Equal(t, flexlist.EEMPTYSOURCE, flexlist.ErrorCode(err))
		require.NotNil(t, res)
		assert.Nil(t, res.Dataset)
		assert.Empty(t, res.Trail)
	})

	t.Run("treats whitespace-only source as a page without blocks", func(t *testing.T) {
		t.Parallel()

		res, err := newExtractor().Extract(context.Background(), "   ")

		assert.Equal(t, flexlist.EMISSINGCONFIG, flexlist.ErrorCode(err))
		assert.Equal(t, []string{"source received (3 bytes)", "html rendered (3 bytes)"}, res.Trail)
	})

	t.Run("reports a missing config block with its trail", func(t *testing.T) {
		t.Parallel()

		res, err := newExtractor().Extract(context.Background(), "<p>no table here</p>")

		assert.Equal(t, flexlist.EMISSINGCONFIG, flexlist.ErrorCode(err))
		assert.Len(t, res.Trail, 2)
	})

	t.Run("reports a missing data end marker", func(t *testing.T) {
		t.Parallel()

		source := "<!-- DATATABLE_CONFIG_START --><!-- DATATABLE_CONFIG_END --><!-- DATATABLE_DATA_START --><table></table>"

		res, err := newExtractor().Extract(context.Background(), source)

		assert.Equal(t, flexlist.EMISSINGDATA, flexlist.ErrorCode(err))
		assert.Nil(t, res.Dataset)
		assert.Equal(t, "config block found", res.Trail[2])
	})

	t.Run("does not parse data when config is missing", func(t *testing.T) {
		t.Parallel()

		x := &extract.Extractor{
			Renderer: flexlist.PassthroughRenderer,
			Parser: &mock.RegionParser{
				ParseDataFn: func(string, []flexlist.Column) (*flexlist.Table, error) {
					t.Fatal("ParseData should not be called")
					return nil, nil
				},
			},
		}

		_, err := x.Extract(context.Background(), "<!-- DATATABLE_DATA_START --><!-- DATATABLE_DATA_END -->")

		assert.Equal(t, flexlist.EMISSINGCONFIG, flexlist.ErrorCode(err))
	})

	t.Run("propagates renderer errors", func(t *testing.T) {
		t.Parallel()

		x := &extract.Extractor{
			Renderer: &mock.Renderer{RenderFn: func(string) (string, error) {
				return "", errors.New("boom")
			}},
			Parser: goquery.NewParser(),
		}

		res, err := x.Extract(context.Background(), "source")

		assert.EqualError(t, err, "boom")
		assert.Equal(t, []string{"source received (6 bytes)"}, res.Trail)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newExtractor().Extract(ctx, page)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

package etree_test

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/flexlist"
	flexlistetree "github.com/fwojciec/flexlist/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func export(t *testing.T, v *flexlist.View) *etree.Element {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, flexlistetree.NewExporter().ExportView(&buf, v))

	doc := etree.NewDocument()
	_, err := doc.ReadFrom(&buf)
	require.NoError(t, err)
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestExporter_ExportView(t *testing.T) {
	t.Parallel()

	cols := []flexlist.Column{
		{Key: "name", Label: "Name"},
		{Key: "status", Label: "Status", Caps: flexlist.CapFilter | flexlist.CapGroup},
	}

	t.Run("writes view attributes and columns", func(t *testing.T) {
		t.Parallel()

		root := export(t, &flexlist.View{
			Columns: cols, Page: 2, PageCount: 3, PageSize: 20, Visible: 45, Total: 50,
		})

		assert.Equal(t, "view", root.Tag)
		assert.Equal(t, "2", root.SelectAttrValue("page", ""))
		assert.Equal(t, "3", root.SelectAttrValue("pageCount", ""))
		assert.Equal(t, "20", root.SelectAttrValue("pageSize", ""))
		assert.Equal(t, "45", root.SelectAttrValue("visible", ""))
		assert.Equal(t, "50", root.SelectAttrValue("total", ""))

		columns := root.FindElements("columns/column")
		require.Len(t, columns, 2)
		assert.Equal(t, "status", columns[1].SelectAttrValue("key", ""))
		assert.Equal(t, "filter-group", columns[1].SelectAttrValue("type", ""))
		assert.Equal(t, "Status", columns[1].Text())
	})

	t.Run("nests rows under their group", func(t *testing.T) {
		t.Parallel()

		root := export(t, &flexlist.View{
			Columns: cols,
			Rows: []flexlist.ViewRow{
				{Group: true, Label: "closed", Index: -1},
				{Index: 0, Cells: flexlist.Row{"name": "<b>Alpha</b>", "status": "closed"}, Text: map[string]string{"name": "Alpha", "status": "closed"}},
				{Group: true, Label: "open", Index: -1},
				{Index: 1, Cells: flexlist.Row{"name": "Beta", "status": "open"}, Text: map[string]string{"name": "Beta", "status": "open"}},
				{Index: 3, Cells: flexlist.Row{"name": "Delta", "status": "open"}, Text: map[string]string{"name": "Delta", "status": "open"}},
			},
		})

		groups := root.FindElements("rows/group")
		require.Len(t, groups, 2)
		assert.Equal(t, "closed", groups[0].SelectAttrValue("label", ""))
		assert.Len(t, groups[1].SelectElements("row"), 2)

		alpha := groups[0].FindElement("row/cell[@key='name']")
		require.NotNil(t, alpha)
		assert.Equal(t, "Alpha", alpha.Text())
		assert.Equal(t, "3", groups[1].SelectElements("row")[1].SelectAttrValue("index", ""))
	})

	t.Run("writes ungrouped rows directly", func(t *testing.T) {
		t.Parallel()

		root := export(t, &flexlist.View{
			Columns:  cols,
			PageSize: flexlist.PageSizeAll,
			Rows: []flexlist.ViewRow{
				{Index: 0, Cells: flexlist.Row{"name": "A&B"}},
			},
		})

		assert.Equal(t, "All", root.SelectAttrValue("pageSize", ""))
		assert.Empty(t, root.FindElements("rows/group"))
		cell := root.FindElement("rows/row/cell[@key='name']")
		require.NotNil(t, cell)
		assert.Equal(t, "A&B", cell.Text())
	})
}

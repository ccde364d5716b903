// Package etree exports views as XML documents using github.com/beevik/etree.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/flexlist"
)

// Ensure Exporter implements flexlist.ViewExporter.
var _ flexlist.ViewExporter = (*Exporter)(nil)

// Exporter writes a view as an indented XML document:
//
//	<view page="1" pageCount="1" visible="2" total="4">
//	  <columns><column key="name" type="filter">Name</column></columns>
//	  <rows>
//	    <group label="open">
//	      <row index="1"><cell key="name">Beta</cell></row>
//	    </group>
//	  </rows>
//	</view>
//
// Cells carry the stripped text of each value.
type Exporter struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// NewExporter creates an Exporter indenting by two spaces.
func NewExporter() *Exporter {
	return &Exporter{Indent: 2}
}

// ExportView writes v to w.
func (e *Exporter) ExportView(w io.Writer, v *flexlist.View) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("view")
	root.CreateAttr("page", strconv.Itoa(v.Page))
	root.CreateAttr("pageCount", strconv.Itoa(v.PageCount))
	root.CreateAttr("pageSize", v.PageSize.String())
	root.CreateAttr("visible", strconv.Itoa(v.Visible))
	root.CreateAttr("total", strconv.Itoa(v.Total))

	cols := root.CreateElement("columns")
	for _, col := range v.Columns {
		el := cols.CreateElement("column")
		el.CreateAttr("key", col.Key)
		el.CreateAttr("type", col.Caps.String())
		el.SetText(col.Label)
	}

	rows := root.CreateElement("rows")
	parent := rows
	for _, row := range v.Rows {
		if row.Group {
			parent = rows.CreateElement("group")
			parent.CreateAttr("label", row.Label)
			continue
		}
		el := parent.CreateElement("row")
		el.CreateAttr("index", strconv.Itoa(row.Index))
		for _, col := range v.Columns {
			cell := el.CreateElement("cell")
			cell.CreateAttr("key", col.Key)
			cell.SetText(cellText(row, col.Key))
		}
	}

	doc.Indent(e.Indent)
	if _, err := doc.WriteTo(w); err != nil {
		return flexlist.Errorf(flexlist.EINTERNAL, "write xml: %v", err)
	}
	return nil
}

func cellText(row flexlist.ViewRow, key string) string {
	if text, ok := row.Text[key]; ok {
		return text
	}
	return row.Cells[key]
}

package htmltomarkdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/flexlist"
)

// Ensure Exporter implements flexlist.ViewExporter at compile time.
var _ flexlist.ViewExporter = (*Exporter)(nil)

// Exporter writes a view as a Markdown table. Cell markup such as links and
// emphasis is converted rather than stripped.
type Exporter struct {
	conv *Converter
}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{conv: NewConverter()}
}

// ExportView writes the rows of v as a GFM table. Group headers become
// rows with the bold label in the first column.
func (e *Exporter) ExportView(w io.Writer, v *flexlist.View) error {
	if len(v.Columns) == 0 {
		return flexlist.Errorf(flexlist.EINVALID, "view has no columns")
	}

	var b strings.Builder
	cells := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		label, err := e.conv.ConvertCell(col.Label)
		if err != nil {
			return fmt.Errorf("convert label %q: %w", col.Key, err)
		}
		cells[i] = label
	}
	writeRow(&b, cells)
	for i := range cells {
		cells[i] = "---"
	}
	writeRow(&b, cells)

	for _, row := range v.Rows {
		for i := range cells {
			cells[i] = ""
		}
		if row.Group {
			label, err := e.conv.ConvertCell(row.Label)
			if err != nil {
				return fmt.Errorf("convert group %q: %w", row.Label, err)
			}
			if label != "" {
				cells[0] = "**" + label + "**"
			}
			writeRow(&b, cells)
			continue
		}
		for i, col := range v.Columns {
			md, err := e.conv.ConvertCell(row.Cells[col.Key])
			if err != nil {
				return fmt.Errorf("convert row %d column %q: %w", row.Index, col.Key, err)
			}
			cells[i] = md
		}
		writeRow(&b, cells)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

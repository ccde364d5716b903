// Package excelize exports views as .xlsx workbooks using
// github.com/xuri/excelize/v2.
package excelize

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fwojciec/flexlist"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the single sheet written by the exporter.
const DefaultSheetName = "flexlist"

// Ensure Exporter implements flexlist.ViewExporter.
var _ flexlist.ViewExporter = (*Exporter)(nil)

// Exporter writes a view as a workbook with one sheet. The first row holds
// the column labels; group headers become bold rows merged across all
// columns. Cells whose text is a number are written as numbers.
type Exporter struct {
	SheetName string
}

// NewExporter creates an Exporter writing to DefaultSheetName.
func NewExporter() *Exporter {
	return &Exporter{SheetName: DefaultSheetName}
}

// ExportView writes v to w.
func (e *Exporter) ExportView(w io.Writer, v *flexlist.View) (err error) {
	if len(v.Columns) == 0 {
		return flexlist.Errorf(flexlist.EINVALID, "view has no columns")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	sheet := e.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return flexlist.Errorf(flexlist.EINTERNAL, "name sheet: %v", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return flexlist.Errorf(flexlist.EINTERNAL, "create style: %v", err)
	}

	last := len(v.Columns)
	for i, col := range v.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Label); err != nil {
			return flexlist.Errorf(flexlist.EINTERNAL, "write header: %v", err)
		}
	}
	if err := styleRow(f, sheet, 1, last, bold); err != nil {
		return err
	}

	for i, row := range v.Rows {
		rowNum := i + 2
		if row.Group {
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(last, rowNum)
			if err := f.SetCellValue(sheet, first, row.Label); err != nil {
				return flexlist.Errorf(flexlist.EINTERNAL, "write group: %v", err)
			}
			if last > 1 {
				if err := f.MergeCell(sheet, first, end); err != nil {
					return flexlist.Errorf(flexlist.EINTERNAL, "merge group: %v", err)
				}
			}
			if err := styleRow(f, sheet, rowNum, last, bold); err != nil {
				return err
			}
			continue
		}
		for j, col := range v.Columns {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheet, cell, cellValue(row, col.Key)); err != nil {
				return flexlist.Errorf(flexlist.EINTERNAL, "write cell %s: %v", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return flexlist.Errorf(flexlist.EINTERNAL, "write workbook: %v", err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(cols, row)
	if err := f.SetCellStyle(sheet, first, end, style); err != nil {
		return flexlist.Errorf(flexlist.EINTERNAL, "style row %d: %v", row, err)
	}
	return nil
}

// cellValue returns the stripped text of a cell, as a float64 when the whole
// text is a finite number.
func cellValue(row flexlist.ViewRow, key string) any {
	text, ok := row.Text[key]
	if !ok {
		text = row.Cells[key]
	}
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) && !strings.ContainsAny(text, "xX_") {
		return n
	}
	return text
}

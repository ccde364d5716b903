package main

import (
	"io"

	"github.com/fwojciec/flexlist"
	flexetree "github.com/fwojciec/flexlist/etree"
	flexexcelize "github.com/fwojciec/flexlist/excelize"
	"github.com/fwojciec/flexlist/htmltomarkdown"
)

// exporters maps export formats to their ViewExporter.
var exporters = map[string]func() flexlist.ViewExporter{
	"markdown": func() flexlist.ViewExporter { return htmltomarkdown.NewExporter() },
	"xml":      func() flexlist.ViewExporter { return flexetree.NewExporter() },
	"xlsx":     func() flexlist.ViewExporter { return flexexcelize.NewExporter() },
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	newExporter, ok := exporters[c.Format]
	if !ok {
		return flexlist.Errorf(flexlist.EINVALID, "unknown export format %q", c.Format)
	}

	view, err := loadView(deps, c.Name, &c.ViewFlags)
	if err != nil {
		return err
	}

	return withOutput(deps, c.Out, func(w io.Writer) error {
		return newExporter().ExportView(w, view)
	})
}

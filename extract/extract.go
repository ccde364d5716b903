// Package extract turns page source into a dataset: render, locate both
// regions, parse them and assemble the result.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/flexlist"
)

var _ flexlist.Extractor = (*Extractor)(nil)

// Extractor implements flexlist.Extractor.
type Extractor struct {
	Renderer flexlist.Renderer
	Parser   flexlist.RegionParser
}

// Extract renders source and parses its configuration and data regions.
// The configuration region is parsed before the data region is located.
func (x *Extractor) Extract(ctx context.Context, source string) (*flexlist.Extraction, error) {
	res := &flexlist.Extraction{Trail: []string{}}
	step := func(format string, args ...any) {
		res.Trail = append(res.Trail, fmt.Sprintf(format, args...))
	}

	if source == "" {
		return res, flexlist.Errorf(flexlist.EEMPTYSOURCE, "page source is empty")
	}
	step("source received (%d bytes)", len(source))

	html, err := x.Renderer.Render(source)
	if err != nil {
		return res, err
	}
	step("html rendered (%d bytes)", len(html))

	if err := ctx.Err(); err != nil {
		return res, err
	}

	fragment, err := flexlist.LocateRegion(html, flexlist.RegionConfig)
	if err != nil {
		return res, err
	}
	step("config block found")

	cfg, err := x.Parser.ParseConfig(fragment)
	if err != nil {
		return res, fmt.Errorf("parse config: %w", err)
	}
	step("config parsed (%d columns, page size %s)", len(cfg.Columns), cfg.Settings.PaginationDefault)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	fragment, err = flexlist.LocateRegion(html, flexlist.RegionData)
	if err != nil {
		return res, err
	}
	step("data block found")

	table, err := x.Parser.ParseData(fragment, cfg.Columns)
	if err != nil {
		return res, fmt.Errorf("parse data: %w", err)
	}
	step("headers: %s", strings.Join(table.Headers, ", "))

	ds := &flexlist.Dataset{
		Settings: cfg.Settings,
		Columns:  cfg.Columns,
		Rows:     table.Rows,
	}
	if err := ds.Validate(); err != nil {
		return res, err
	}
	res.Dataset = ds
	step("dataset built (%d rows)", len(ds.Rows))

	return res, nil
}

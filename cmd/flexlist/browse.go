package main

import (
	"fmt"

	"github.com/fwojciec/flexlist"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	ext, err := extractPage(deps, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}
	return deps.Browse(deps.Ctx, deps.NewEngine(ext.Dataset), ext.Dataset.Settings)
}

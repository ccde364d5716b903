package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/flexlist"
)

// Run executes the import command. An existing page of the same name has
// its source replaced.
func (c *ImportCmd) Run(deps *Dependencies) error {
	source, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if strings.TrimSpace(source) == "" {
		fmt.Fprintf(deps.Stderr, "error: source of %q is empty\n", c.Name)
		return flexlist.Errorf(flexlist.EINVALID, "source of %q is empty", c.Name)
	}

	existing, err := deps.Pages.FindPages(deps.Ctx, flexlist.PageFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}

	if len(existing) > 0 {
		if _, err := deps.Pages.UpdatePage(deps.Ctx, existing[0].ID, flexlist.PageUpdate{Source: &source}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Updated page %q (%d bytes)\n", c.Name, len(source))
		return nil
	}

	page := &flexlist.Page{Name: c.Name, Source: source}
	if err := deps.Pages.CreatePage(deps.Ctx, page); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Imported page %q (%d bytes)\n", c.Name, len(source))
	return nil
}

func (c *ImportCmd) read(deps *Dependencies) (string, error) {
	if c.File == "-" {
		b, err := io.ReadAll(deps.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(c.File)
	return string(b), err
}

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, flexlist.PageFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'flexlist import' to add one.")
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d bytes\n", p.ID, p.Name, len(p.Source))
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return flexlist.Errorf(flexlist.EINVALID, "use --force to confirm deletion")
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, flexlist.PageFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stderr, "error: page %q not found. Use 'flexlist pages' to see stored pages.\n", c.Name)
		return flexlist.Errorf(flexlist.ENOTFOUND, "page %q not found", c.Name)
	}

	page := pages[0]
	if err := deps.Pages.DeletePage(deps.Ctx, page.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted page %q\n", page.Name)
	return nil
}

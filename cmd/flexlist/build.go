package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/batch"
	flexfs "github.com/fwojciec/flexlist/fs"
	"github.com/fwojciec/flexlist/web"
)

// Run executes the build command. Fragments replace the output directory
// only when every page was written.
func (c *BuildCmd) Run(deps *Dependencies) error {
	pages := c.Pages
	if len(pages) == 0 {
		names, err := deps.PageNames(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
			return err
		}
		pages = names
	}
	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages to build.")
		return nil
	}

	out := filepath.Clean(c.Out)
	store := flexfs.NewFragmentStore(filepath.Dir(out), filepath.Base(out))
	builder := &batch.Builder{
		Sources:     deps.Sources,
		Extractor:   deps.Extractor,
		Render:      renderFragment(deps),
		Writer:      store,
		Concurrency: c.Concurrency,
	}

	result, err := builder.Build(deps.Ctx, pages, func(e batch.ProgressEvent) {
		if e.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", e.Page, flexlist.ErrorMessage(e.Error))
		}
	})
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
		return err
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d pages into %s (%d failed, %d bytes)\n",
		result.Written+result.Failed, out, result.Failed, result.Bytes)
	return nil
}

// renderFragment renders a page's table, or its error block when the
// extraction failed.
func renderFragment(deps *Dependencies) batch.RenderFunc {
	return func(w io.Writer, ext *flexlist.Extraction, err error) error {
		if err != nil {
			return deps.Shell.RenderError(w, err, ext.Trail)
		}
		return deps.Shell.Render(w, web.Document{
			Dataset: ext.Dataset,
			Engine:  deps.NewEngine(ext.Dataset),
			State:   flexlist.NewViewState(ext.Dataset.Settings),
			Trail:   ext.Trail,
		})
	}
}

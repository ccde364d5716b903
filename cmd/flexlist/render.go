package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/web"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	return withOutput(deps, c.Out, func(w io.Writer) error {
		if c.Name == "" {
			if err := deps.Shell.RenderMissingPage(w); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stderr, "error: no data page specified\n")
			return flexlist.Errorf(flexlist.EINVALID, "no data page specified")
		}

		ext, err := extractPage(deps, c.Name)
		if err != nil {
			if rerr := deps.Shell.RenderError(w, err, ext.Trail); rerr != nil {
				return rerr
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", flexlist.ErrorMessage(err))
			return err
		}

		return deps.Shell.Render(w, web.Document{
			Dataset: ext.Dataset,
			Engine:  deps.NewEngine(ext.Dataset),
			State:   flexlist.NewViewState(ext.Dataset.Settings),
			Trail:   ext.Trail,
		})
	})
}

// extractPage finds the source of page and extracts its dataset. The
// returned extraction is never nil.
func extractPage(deps *Dependencies, page string) (*flexlist.Extraction, error) {
	source, err := deps.Sources.FindSource(deps.Ctx, page)
	if err != nil {
		return &flexlist.Extraction{Trail: []string{}}, err
	}
	ext, err := deps.Extractor.Extract(deps.Ctx, source)
	if ext == nil {
		ext = &flexlist.Extraction{Trail: []string{}}
	}
	return ext, err
}

// withOutput runs fn with stdout, or with the file at path when set.
func withOutput(deps *Dependencies, path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(deps.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

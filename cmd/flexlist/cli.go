package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/web"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *slog.Logger

	Pages     flexlist.PageService
	Sources   flexlist.PageSource
	Extractor flexlist.Extractor
	Shell     *web.Shell

	// NewEngine builds the query engine of an extracted dataset.
	NewEngine func(ds *flexlist.Dataset) flexlist.QueryEngine

	// Browse runs the interactive terminal browser.
	Browse func(ctx context.Context, engine flexlist.QueryEngine, settings flexlist.Settings) error

	// PageNames lists the pages built when build is given none.
	PageNames func(ctx context.Context) ([]string, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"Load defaults from a YAML file" placeholder:"FILE"`
	DB        string          `env:"FLEXLIST_DB" help:"Database path"`
	Locale    string          `env:"FLEXLIST_LOCALE" default:"ja" help:"Message and collation language"`
	Debug     bool            `env:"FLEXLIST_DEBUG" help:"Include the extraction trail in rendered output"`
	Verbose   bool            `short:"v" help:"Log operations to stderr"`
	SourceDir string          `name:"source-dir" env:"FLEXLIST_SOURCE_DIR" help:"Read page sources from <dir>/<page>.txt" type:"path"`
	SourceURL string          `name:"source-url" env:"FLEXLIST_SOURCE_URL" help:"Fetch page sources from a URL template containing {page}"`
	Selector  string          `help:"CSS selector holding the source in fetched pages"`
	Markup    string          `enum:"markdown,html" default:"markdown" help:"Source markup (markdown, html)"`
	NoCache   bool            `name:"no-cache" help:"Do not cache extracted datasets"`

	Render RenderCmd `cmd:"" help:"Render the interactive table of a data page"`
	Query  QueryCmd  `cmd:"" help:"Print the rows of a data page"`
	Export ExportCmd `cmd:"" help:"Export the rows of a data page"`
	Browse BrowseCmd `cmd:"" help:"Browse a data page in the terminal"`
	Import ImportCmd `cmd:"" help:"Store the source of a data page"`
	Pages  PagesCmd  `cmd:"" help:"List stored pages"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored page"`
	Build  BuildCmd  `cmd:"" help:"Render many data pages into a directory"`
}

// ViewFlags select the view of a dataset.
type ViewFlags struct {
	Search   string   `short:"s" help:"Free-text search"`
	Filter   []string `short:"f" sep:"none" help:"Accept a column value as key=value (repeatable)"`
	Group    string   `short:"g" help:"Group by a column key"`
	Sort     []string `sep:"none" help:"Sort by key or key:desc (repeatable, highest priority first)"`
	PageSize string   `name:"page-size" help:"Rows per page, or All"`
	Page     int      `short:"p" default:"1" help:"Page number"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Name string `arg:"" optional:"" help:"Data page name"`
	Out  string `short:"o" type:"path" help:"Write the fragment to a file"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Name      string `arg:"" help:"Data page name"`
	ViewFlags `embed:""`
	JSON      bool `help:"Print the view as JSON"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name      string `arg:"" help:"Data page name"`
	ViewFlags `embed:""`
	Format    string `enum:"markdown,xml,xlsx" default:"markdown" help:"Export format (markdown, xml, xlsx)"`
	Out       string `short:"o" type:"path" help:"Write to a file"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Name string `arg:"" help:"Data page name"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name string `arg:"" help:"Page name"`
	File string `arg:"" help:"Source file, or - for stdin"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Page name"`
	Force bool   `help:"Confirm deletion"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Out         string   `arg:"" type:"path" help:"Output directory"`
	Pages       []string `arg:"" optional:"" help:"Pages to build (default: all)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
}

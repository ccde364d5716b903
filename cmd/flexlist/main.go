package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/bloom"
	"github.com/fwojciec/flexlist/extract"
	flexfs "github.com/fwojciec/flexlist/fs"
	"github.com/fwojciec/flexlist/goldmark"
	"github.com/fwojciec/flexlist/goquery"
	flexhttp "github.com/fwojciec/flexlist/http"
	"github.com/fwojciec/flexlist/query"
	flexslog "github.com/fwojciec/flexlist/slog"
	"github.com/fwojciec/flexlist/sqlite"
	"github.com/fwojciec/flexlist/tui"
	"github.com/fwojciec/flexlist/web"
	"golang.org/x/text/language"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor FLEXLIST_DB is set.
	DBPath string

	// ConfigPaths are YAML files read for flag defaults, in order.
	ConfigPaths []string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	m := &Main{DBPath: defaultDBPath()}
	if path := DefaultConfigPath(); path != "" {
		m.ConfigPaths = []string{path}
	}
	return m
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("flexlist"),
		kong.Description("Interactive tables from wiki data pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(LoadYAMLConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'flexlist --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(cli.Verbose, stderr)

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FLEXLIST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	pages := sqlite.NewPageService(m.DB)
	deps.Pages = pages

	var sources flexlist.PageSource = pages
	deps.PageNames = storedPageNames(pages)
	switch {
	case cli.SourceDir != "":
		dir := flexfs.NewSource(cli.SourceDir)
		sources = dir
		deps.PageNames = dir.PageNames
	case cli.SourceURL != "":
		var opts []flexhttp.Option
		if cli.Selector != "" {
			opts = append(opts, flexhttp.WithSelector(cli.Selector))
		}
		sources = flexhttp.NewSource(cli.SourceURL, opts...)
	}
	deps.Sources = flexslog.NewLoggingPageSource(sources, deps.Logger)

	renderer := flexlist.PassthroughRenderer
	if cli.Markup == "markdown" {
		renderer = goldmark.NewRenderer()
	}
	var extractor flexlist.Extractor = &extract.Extractor{
		Renderer: renderer,
		Parser:   goquery.NewParser(),
	}
	if !cli.NoCache {
		extractor = &extract.CachedExtractor{
			Next:  extractor,
			Cache: flexslog.NewLoggingDatasetCache(sqlite.NewDatasetCache(m.DB), deps.Logger),
		}
	}
	deps.Extractor = flexslog.NewLoggingExtractor(extractor, deps.Logger)

	tag := parseLocale(cli.Locale)
	deps.Shell = web.NewShell(web.WithLanguage(tag), web.WithDebug(cli.Debug))
	deps.NewEngine = func(ds *flexlist.Dataset) flexlist.QueryEngine {
		return query.New(ds, goquery.NewStripper(),
			query.WithLocale(tag),
			query.WithPrefilter(bloom.NewTrigramIndexBuilder()),
		)
	}
	deps.Browse = func(ctx context.Context, engine flexlist.QueryEngine, settings flexlist.Settings) error {
		return tui.Run(ctx, tui.New(engine, settings))
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on stderr when verbose, otherwise a
// logger that discards everything.
func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// parseLocale parses a BCP 47 tag, falling back to the default collation
// locale.
func parseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return query.DefaultLocale
	}
	return tag
}

func storedPageNames(pages flexlist.PageService) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		found, err := pages.FindPages(ctx, flexlist.PageFilter{})
		if err != nil {
			return nil, err
		}
		names := make([]string, len(found))
		for i, p := range found {
			names[i] = p.Name
		}
		return names, nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("FLEXLIST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "flexlist.db"
	}
	dir := filepath.Join(home, ".flexlist")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "flexlist.db")
}

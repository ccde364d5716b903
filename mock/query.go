package mock

import (
	"io"

	"github.com/fwojciec/flexlist"
)

// Compile-time interface verification.
var (
	_ flexlist.QueryEngine            = (*QueryEngine)(nil)
	_ flexlist.TextExtractor          = (*TextExtractor)(nil)
	_ flexlist.SearchPrefilter        = (*SearchPrefilter)(nil)
	_ flexlist.SearchPrefilterBuilder = (*SearchPrefilterBuilder)(nil)
	_ flexlist.ViewExporter           = (*ViewExporter)(nil)
)

// QueryEngine is a mock implementation of flexlist.QueryEngine.
type QueryEngine struct {
	DispatchFn      func(state flexlist.ViewState, action flexlist.Action) flexlist.ViewState
	ViewFn          func(state flexlist.ViewState) *flexlist.View
	FilterOptionsFn func(key string) []string
}

func (e *QueryEngine) Dispatch(state flexlist.ViewState, action flexlist.Action) flexlist.ViewState {
	return e.DispatchFn(state, action)
}

func (e *QueryEngine) View(state flexlist.ViewState) *flexlist.View {
	return e.ViewFn(state)
}

func (e *QueryEngine) FilterOptions(key string) []string {
	return e.FilterOptionsFn(key)
}

// TextExtractor is a mock implementation of flexlist.TextExtractor.
type TextExtractor struct {
	TextFn func(markup string) string
}

func (x *TextExtractor) Text(markup string) string {
	return x.TextFn(markup)
}

// SearchPrefilter is a mock implementation of flexlist.SearchPrefilter.
type SearchPrefilter struct {
	MayContainFn func(row int, query string) bool
}

func (p *SearchPrefilter) MayContain(row int, query string) bool {
	return p.MayContainFn(row, query)
}

// SearchPrefilterBuilder is a mock implementation of
// flexlist.SearchPrefilterBuilder.
type SearchPrefilterBuilder struct {
	BuildPrefilterFn func(rows [][]string) flexlist.SearchPrefilter
}

func (b *SearchPrefilterBuilder) BuildPrefilter(rows [][]string) flexlist.SearchPrefilter {
	return b.BuildPrefilterFn(rows)
}

// ViewExporter is a mock implementation of flexlist.ViewExporter.
type ViewExporter struct {
	ExportViewFn func(w io.Writer, v *flexlist.View) error
}

func (x *ViewExporter) ExportView(w io.Writer, v *flexlist.View) error {
	return x.ExportViewFn(w, v)
}

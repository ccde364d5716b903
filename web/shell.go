// Package web renders the HTML shell of an interactive table: the controls,
// the header with sort and filter buttons, the visible page of rows and the
// embedded dataset payload that a client-side engine takes over.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/fwojciec/flexlist"
	"golang.org/x/text/language"
)

//go:embed templates
var assets embed.FS

var templates = template.Must(template.ParseFS(assets, "templates/*.html"))

// CSS is the stylesheet emitted with every shell.
var CSS = mustReadAsset("templates/flexlist.css")

func mustReadAsset(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Shell renders tables and extraction errors as HTML fragments.
type Shell struct {
	msg   Messages
	debug bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithLanguage selects the message language. Unsupported languages fall
// back to the closest supported one.
func WithLanguage(tag language.Tag) Option {
	return func(s *Shell) {
		s.msg = MessagesFor(tag)
	}
}

// WithDebug enables the diagnostic report listing the extraction trail.
func WithDebug(debug bool) Option {
	return func(s *Shell) {
		s.debug = debug
	}
}

// NewShell creates a Shell with Japanese messages and diagnostics off.
func NewShell(opts ...Option) *Shell {
	s := &Shell{msg: catalog[Supported[0]]}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Messages returns the messages the shell renders with.
func (s *Shell) Messages() Messages {
	return s.msg
}

// Document is everything needed to render one interactive table.
type Document struct {
	Dataset *flexlist.Dataset
	Engine  flexlist.QueryEngine
	State   flexlist.ViewState
	Trail   []string
}

// Render writes the shell for doc with the page of rows selected by its
// state. In debug mode the trail is written before the shell.
func (s *Shell) Render(w io.Writer, doc Document) error {
	payload, err := jsonPayload(doc.Dataset)
	if err != nil {
		return err
	}

	view := doc.Engine.View(doc.State)
	data := shellData{
		Msg:     s.msg,
		State:   doc.State,
		Body:    s.body(view),
		Payload: payload,
		CSS:     template.CSS(CSS),
	}
	if s.debug {
		data.Trail = doc.Trail
	}

	for _, col := range doc.Dataset.Columns {
		if col.Caps.Has(flexlist.CapGroup) {
			data.GroupColumns = append(data.GroupColumns, groupOption{
				Key:      col.Key,
				Label:    col.Label,
				Selected: col.Key == doc.State.Group,
			})
		}
		data.Headers = append(data.Headers, s.header(doc, col))
	}

	settings := doc.Dataset.Settings
	for _, size := range settings.PaginationOptions {
		data.PageSizes = append(data.PageSizes, pageSizeOption{
			Value:    size.String(),
			Label:    s.msg.PageSizeLabel(int(size)),
			Selected: size == doc.State.PageSize,
		})
	}

	return execute(w, "document", data)
}

// RenderBody writes the table rows of v, for replacing the tbody of a
// rendered shell.
func (s *Shell) RenderBody(w io.Writer, v *flexlist.View) error {
	return execute(w, "body", s.body(v))
}

// RenderPagination writes the page links of v, for replacing the pagination
// paragraph of a rendered shell.
func (s *Shell) RenderPagination(w io.Writer, v *flexlist.View) error {
	return execute(w, "pagination", s.body(v))
}

// RenderError writes the localized failure message in place of the table.
// In debug mode the trail and the error follow the message.
func (s *Shell) RenderError(w io.Writer, err error, trail []string) error {
	data := errorData{Msg: s.msg, Message: s.msg.ExtractionFailed}
	if s.debug {
		data.Trail = append(append([]string{}, trail...), "error: "+flexlist.ErrorMessage(err))
	}
	return execute(w, "error", data)
}

// RenderMissingPage writes the message shown when no data page was named.
func (s *Shell) RenderMissingPage(w io.Writer) error {
	return execute(w, "error", errorData{Msg: s.msg, Message: s.msg.NoDataPage})
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

type shellData struct {
	Msg          Messages
	State        flexlist.ViewState
	GroupColumns []groupOption
	PageSizes    []pageSizeOption
	Headers      []headerData
	Body         bodyData
	Trail        []string
	Payload      template.JS
	CSS          template.CSS
}

type errorData struct {
	Msg     Messages
	Message string
	Trail   []string
}

type groupOption struct {
	Key      string
	Label    string
	Selected bool
}

type pageSizeOption struct {
	Value    string
	Label    string
	Selected bool
}

type headerData struct {
	Key          string
	Label        string
	Width        string
	Dir          flexlist.Direction
	Filter       bool
	FilterLabel  string
	FilterButton string
	Options      []filterOption
}

type filterOption struct {
	ID      string
	Key     string
	Value   string
	Checked bool
}

type bodyData struct {
	Span  int
	Empty string
	Rows  []bodyRow
	Pages []pageLink
}

type bodyRow struct {
	Group bool
	Label string
	Index int
	Cells []bodyCell
}

type bodyCell struct {
	Key  string
	HTML template.HTML
}

type pageLink struct {
	N      int
	Active bool
}

func (s *Shell) header(doc Document, col flexlist.Column) headerData {
	h := headerData{
		Key:   col.Key,
		Label: col.Label,
	}
	if !col.IsAutoWidth() {
		h.Width = col.Width
	}
	if dir, ok := doc.State.SortDirection(col.Key); ok {
		h.Dir = dir
	}
	if col.Caps.Has(flexlist.CapFilter) {
		h.Filter = true
		h.FilterLabel = s.msg.FilterLabel(col.Label)
		h.FilterButton = s.msg.FilterButton
		for i, value := range doc.Engine.FilterOptions(col.Key) {
			h.Options = append(h.Options, filterOption{
				ID:      fmt.Sprintf("filter-%s-%d", col.Key, i),
				Key:     col.Key,
				Value:   value,
				Checked: doc.State.Accepts(col.Key, value),
			})
		}
	}
	return h
}

func (s *Shell) body(v *flexlist.View) bodyData {
	b := bodyData{Span: max(len(v.Columns), 1), Empty: s.msg.EmptyView}
	for _, row := range v.Rows {
		if row.Group {
			b.Rows = append(b.Rows, bodyRow{Group: true, Label: row.Label, Index: row.Index})
			continue
		}
		r := bodyRow{Index: row.Index}
		for _, col := range v.Columns {
			// Cell markup is the wiki's own rendered HTML.
			r.Cells = append(r.Cells, bodyCell{Key: col.Key, HTML: template.HTML(row.Cells[col.Key])})
		}
		b.Rows = append(b.Rows, r)
	}
	if v.PageCount > 1 {
		for n := 1; n <= v.PageCount; n++ {
			b.Pages = append(b.Pages, pageLink{N: n, Active: n == v.Page})
		}
	}
	return b
}

var jsonEscaper = strings.NewReplacer("<", `\u003c`, ">", `\u003e`, "&", `\u0026`)

// jsonPayload encodes ds for embedding in a script element. Markup
// characters are escaped so the payload cannot close the element.
func jsonPayload(ds *flexlist.Dataset) (template.JS, error) {
	var buf bytes.Buffer
	if err := flexlist.EncodeDataset(&buf, ds); err != nil {
		return "", err
	}
	return template.JS(jsonEscaper.Replace(strings.TrimSpace(buf.String()))), nil
}

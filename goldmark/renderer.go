// Package goldmark renders Markdown-flavoured wiki source to HTML with
// github.com/yuin/goldmark.
package goldmark

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/fwojciec/flexlist"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var _ flexlist.Renderer = (*Renderer)(nil)

// Directives map the block directives of a page to the markers they emit.
var Directives = map[string]string{
	"#flexlist_config":    flexlist.MarkerConfigStart,
	"#flexlist_endconfig": flexlist.MarkerConfigEnd,
	"#flexlist_data":      flexlist.MarkerDataStart,
	"#flexlist_enddata":   flexlist.MarkerDataEnd,
}

// Renderer implements flexlist.Renderer using goldmark with GFM tables.
// Raw HTML in the source is passed through.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
				html.WithHardWraps(),
			),
		),
	}
}

// Render converts source to HTML. Directive lines become sentinel comments.
func (r *Renderer) Render(source string) (string, error) {
	if source == "" {
		return "", flexlist.Errorf(flexlist.EEMPTYSOURCE, "page source is empty")
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(expandDirectives(source)), &buf); err != nil {
		return "", flexlist.Errorf(flexlist.EINTERNAL, "failed to render source: %v", err)
	}
	return buf.String(), nil
}

// expandDirectives replaces directive lines with sentinel comments, each
// set apart by blank lines so it renders as its own HTML block.
func expandDirectives(source string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(source))
	sc.Buffer(make([]byte, 0, 64*1024), len(source)+1)
	for sc.Scan() {
		line := sc.Text()
		if marker, ok := Directives[strings.TrimSpace(line)]; ok {
			b.WriteString("\n")
			b.WriteString(flexlist.SentinelComment(marker))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

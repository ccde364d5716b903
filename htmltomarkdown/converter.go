// Package htmltomarkdown exports views as Markdown tables using
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var lineBreaks = regexp.MustCompile(`\s*\n\s*`)

// Converter turns cell markup into Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter handling links, emphasis,
// strikethrough and nested tables.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				strikethrough.NewStrikethroughPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert converts markup into Markdown. Blank markup converts to "".
func (c *Converter) Convert(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}
	md, err := c.conv.ConvertString(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// ConvertCell converts markup into a single line fit for a table cell.
// Line breaks become <br> and pipes are escaped.
func (c *Converter) ConvertCell(markup string) (string, error) {
	md, err := c.Convert(markup)
	if err != nil {
		return "", err
	}
	md = strings.ReplaceAll(md, "|", `\|`)
	return lineBreaks.ReplaceAllString(md, "<br>"), nil
}

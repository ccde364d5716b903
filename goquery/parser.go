// Package goquery parses the configuration and data regions of a rendered
// page with github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/flexlist"
	"golang.org/x/net/html"
)

var _ flexlist.RegionParser = (*Parser)(nil)

// Parser implements flexlist.RegionParser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// settingLine matches a "key: value" line of the configuration region.
var settingLine = regexp.MustCompile(`(?m)^[ \t]*([A-Za-z0-9_]+)[ \t]*:[ \t]*(.*?)[ \t\r]*$`)

// minConfigCells is the number of cells a column row needs: key, type,
// label and width.
const minConfigCells = 4

// ParseConfig parses the settings lines and the column table of the
// configuration region.
func (p *Parser) ParseConfig(fragment string) (*flexlist.Config, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}

	settings := flexlist.DefaultSettings()
	var text strings.Builder
	for _, n := range doc.Find("body").Nodes {
		writeLines(&text, n)
	}
	for _, m := range settingLine.FindAllStringSubmatch(text.String(), -1) {
		settings.Set(m[1], m[2])
	}
	settings.Normalize()

	cfg := &flexlist.Config{Settings: settings, Columns: []flexlist.Column{}}
	seen := make(map[string]bool)
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 && isLegendRow(row) {
			return
		}

		cells := row.ChildrenFiltered("td")
		if cells.Length() < minConfigCells {
			return
		}

		col := flexlist.Column{
			Key:   cellText(cells.Eq(0)),
			Caps:  flexlist.ParseCapabilities(cellText(cells.Eq(1))),
			Label: cellText(cells.Eq(2)),
			Width: cellText(cells.Eq(3)),
		}
		if col.Key == "" || seen[col.Key] {
			return
		}
		if cells.Length() > minConfigCells {
			col.Options = parseOptions(cellText(cells.Eq(minConfigCells)))
		}

		seen[col.Key] = true
		cfg.Columns = append(cfg.Columns, col)
	})

	return cfg, nil
}

// ParseData parses the data table, joining header labels to column labels
// case-insensitively. The first matching column wins.
func (p *Parser) ParseData(fragment string, columns []flexlist.Column) (*flexlist.Table, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}

	table := &flexlist.Table{Headers: []string{}, Rows: []flexlist.Row{}}
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return table, nil
	}

	// A wiki splits a table wherever the cell count changes, so headers come
	// from the first table that has them and rows from every table.
	var headerRows, fallback *goquery.Selection
	tables.EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		headerRows = tbl.ChildrenFiltered("thead").ChildrenFiltered("tr")
		if headerRows.Length() == 0 {
			fallback = firstHeaderRow(tbl)
			headerRows = fallback
		}
		return headerRows.Length() == 0
	})
	headerRows.Each(func(_ int, row *goquery.Selection) {
		row.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			table.Headers = append(table.Headers, cellText(cell))
		})
	})

	keys := make([]string, len(table.Headers))
	for i, label := range table.Headers {
		keys[i] = columnKeyForLabel(columns, label)
	}

	tables.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		if fallback != nil && fallback.Length() > 0 && fallback.IsSelection(row) {
			return
		}

		record := flexlist.Row{}
		row.ChildrenFiltered("td").Each(func(i int, cell *goquery.Selection) {
			if i >= len(keys) || keys[i] == "" {
				return
			}
			markup, err := cell.Html()
			if err != nil {
				return
			}
			record[keys[i]] = strings.TrimSpace(markup)
		})
		if len(record) == 0 {
			return
		}
		table.Rows = append(table.Rows, record)
	})

	return table, nil
}

func parseFragment(fragment string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, flexlist.Errorf(flexlist.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// isLegendRow reports whether row is a header row of the column table.
func isLegendRow(row *goquery.Selection) bool {
	if row.ChildrenFiltered("th").Length() > 0 {
		return true
	}
	return strings.Contains(strings.ToLower(row.Text()), "key")
}

// firstHeaderRow returns the first body row made of th cells only.
func firstHeaderRow(tbl *goquery.Selection) *goquery.Selection {
	return tbl.ChildrenFiltered("tbody").ChildrenFiltered("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.ChildrenFiltered("th").Length() > 0 && row.ChildrenFiltered("td").Length() == 0
	}).First()
}

func columnKeyForLabel(columns []flexlist.Column, label string) string {
	for _, col := range columns {
		if strings.EqualFold(col.Label, label) {
			return col.Key
		}
	}
	return ""
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// parseOptions parses "name1:value1; name2:value2". Pairs without a colon
// are skipped.
func parseOptions(s string) flexlist.ColumnOptions {
	var opts flexlist.ColumnOptions
	for _, pair := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		switch name {
		case "order":
			opts.Order = splitList(value)
		case "sort_priority":
			if n, err := strconv.Atoi(value); err == nil {
				opts.SortPriority = &n
				continue
			}
			fallthrough
		default:
			if name == "" {
				continue
			}
			if opts.Extra == nil {
				opts.Extra = make(map[string]string)
			}
			opts.Extra[name] = value
		}
	}
	return opts
}

// splitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// blockElements start a new line in the settings text.
var blockElements = map[string]bool{
	"address": true, "blockquote": true, "dd": true, "div": true, "dl": true,
	"dt": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "hr": true, "li": true, "ol": true, "p": true, "pre": true,
	"section": true, "ul": true,
}

// writeLines writes the text of n with <br> and block boundaries turned
// into newlines. Tables hold the column rows and are skipped.
func writeLines(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch {
		case n.Data == "br":
			b.WriteByte('\n')
			return
		case n.Data == "table", n.Data == "script", n.Data == "style":
			b.WriteByte('\n')
			return
		case blockElements[n.Data]:
			b.WriteByte('\n')
			defer b.WriteByte('\n')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeLines(b, c)
	}
}

package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/flexlist"
)

var _ flexlist.TextExtractor = (*Stripper)(nil)

// Stripper implements flexlist.TextExtractor by parsing cell markup and
// keeping its text nodes.
type Stripper struct{}

// NewStripper creates a new Stripper.
func NewStripper() *Stripper {
	return &Stripper{}
}

// Text returns the tag-stripped, entity-decoded and trimmed text of markup.
func (s *Stripper) Text(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return strings.TrimSpace(markup)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

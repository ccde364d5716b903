package web

import (
	"fmt"

	"golang.org/x/text/language"
)

// Messages holds the user-facing strings of the shell in one language.
type Messages struct {
	ErrorLabel        string
	NoDataPage        string
	ExtractionFailed  string
	DiagnosticTitle   string
	SearchPlaceholder string
	GroupNone         string
	PageSizeTitle     string
	PageSizeAll       string
	PageSizeFormat    string
	FilterButton      string
	FilterLabelFormat string
	EmptyView         string
}

// PageSizeLabel returns the option label for a page size.
func (m Messages) PageSizeLabel(n int) string {
	if n <= 0 {
		return m.PageSizeAll
	}
	return fmt.Sprintf(m.PageSizeFormat, n)
}

// FilterLabel returns the accessible label of a column's filter toggle.
func (m Messages) FilterLabel(column string) string {
	return fmt.Sprintf(m.FilterLabelFormat, column)
}

// Supported lists the message languages, default first.
var Supported = []language.Tag{language.Japanese, language.English}

var catalog = map[language.Tag]Messages{
	language.Japanese: {
		ErrorLabel:        "エラー:",
		NoDataPage:        "データページが指定されていません。",
		ExtractionFailed:  "データ抽出に失敗しました。",
		DiagnosticTitle:   "診断レポート",
		SearchPlaceholder: "すべての項目から横断検索...",
		GroupNone:         "グループ化: なし",
		PageSizeTitle:     "1ページあたりの表示件数",
		PageSizeAll:       "すべて",
		PageSizeFormat:    "%d件",
		FilterButton:      "絞",
		FilterLabelFormat: "%sで絞り込み",
		EmptyView:         "該当する項目はありません。",
	},
	language.English: {
		ErrorLabel:        "Error:",
		NoDataPage:        "No data page was specified.",
		ExtractionFailed:  "Data extraction failed.",
		DiagnosticTitle:   "Diagnostic report",
		SearchPlaceholder: "Search all columns...",
		GroupNone:         "Group by: none",
		PageSizeTitle:     "Rows per page",
		PageSizeAll:       "All",
		PageSizeFormat:    "%d rows",
		FilterButton:      "F",
		FilterLabelFormat: "Filter by %s",
		EmptyView:         "No matching rows.",
	},
}

var matcher = language.NewMatcher(Supported)

// MatchLanguage picks the supported language best matching an
// Accept-Language style list such as "en-US,en;q=0.9". It falls back to
// Japanese.
func MatchLanguage(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, i, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[i]
}

// MessagesFor returns the messages of the supported language best matching
// tag.
func MessagesFor(tag language.Tag) Messages {
	_, i, _ := matcher.Match(tag)
	return catalog[Supported[i]]
}

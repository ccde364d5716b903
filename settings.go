package flexlist

import (
	"strconv"
	"strings"
)

// PageSize is the number of rows shown per page. PageSizeAll shows every
// visible row on a single page.
type PageSize int

// PageSizeAll disables pagination.
const PageSizeAll PageSize = 0

// DefaultPageSize is used when no valid pagination_default is configured.
const DefaultPageSize PageSize = 20

// ParsePageSize parses a positive integer or the sentinel "All"
// (case-insensitive).
func ParsePageSize(s string) (PageSize, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return PageSizeAll, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return PageSize(n), true
}

// String returns "All" or the decimal size.
func (p PageSize) String() string {
	if p <= PageSizeAll {
		return "All"
	}
	return strconv.Itoa(int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p PageSize) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PageSize) UnmarshalText(text []byte) error {
	v, ok := ParsePageSize(string(text))
	if !ok {
		return Errorf(EINVALID, "invalid page size %q", string(text))
	}
	*p = v
	return nil
}

// Setting keys recognized in the configuration block.
const (
	SettingPaginationOptions = "pagination_options"
	SettingPaginationDefault = "pagination_default"
)

// Settings holds the table-wide configuration.
type Settings struct {
	PaginationOptions []PageSize `json:"paginationOptions"`
	PaginationDefault PageSize   `json:"paginationDefault"`
}

// DefaultSettings returns the settings used when the configuration block
// has no setting lines.
func DefaultSettings() Settings {
	return Settings{
		PaginationOptions: []PageSize{20, 50, 100, PageSizeAll},
		PaginationDefault: DefaultPageSize,
	}
}

// Set applies one "key: value" setting line. It reports whether the key
// was recognized; unknown keys are ignored.
func (s *Settings) Set(key, value string) bool {
	switch key {
	case SettingPaginationOptions:
		s.PaginationOptions = parsePageSizes(value)
	case SettingPaginationDefault:
		size, ok := ParsePageSize(value)
		if !ok {
			size = DefaultPageSize
		}
		s.PaginationDefault = size
	default:
		return false
	}
	return true
}

// Normalize makes the default page size selectable by appending it to the
// options when it is missing. An empty options list disables the page size
// control and is left alone.
func (s *Settings) Normalize() {
	if len(s.PaginationOptions) == 0 {
		return
	}
	for _, opt := range s.PaginationOptions {
		if opt == s.PaginationDefault {
			return
		}
	}
	s.PaginationOptions = append(s.PaginationOptions, s.PaginationDefault)
}

// parsePageSizes splits a comma-separated list, dropping invalid and
// duplicate entries while preserving order.
func parsePageSizes(value string) []PageSize {
	sizes := []PageSize{}
	seen := make(map[PageSize]bool)
	for _, part := range strings.Split(value, ",") {
		size, ok := ParsePageSize(part)
		if !ok || seen[size] {
			continue
		}
		seen[size] = true
		sizes = append(sizes, size)
	}
	return sizes
}

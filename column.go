package flexlist

import (
	"encoding/json"
	"strings"
)

// Capabilities is the set of interactive features enabled for a column.
// The zero value is a plain column.
type Capabilities uint8

// Capability tags.
const (
	CapFilter Capabilities = 1 << iota // values can be filtered with checkboxes
	CapCSV                             // cells hold comma-separated values
	CapGroup                           // rows can be grouped by this column
)

// capabilityTags lists tags in their canonical order.
var capabilityTags = []struct {
	cap Capabilities
	tag string
}{
	{CapFilter, "filter"},
	{CapCSV, "csv"},
	{CapGroup, "group"},
}

// ParseCapabilities converts the free-text type cell of a column
// configuration row into a capability set. Matching is by substring and
// case-insensitive, so "filter-csv" yields CapFilter|CapCSV.
func ParseCapabilities(typ string) Capabilities {
	typ = strings.ToLower(typ)
	var caps Capabilities
	for _, t := range capabilityTags {
		if strings.Contains(typ, t.tag) {
			caps |= t.cap
		}
	}
	return caps
}

// Has reports whether all capabilities in c are set.
func (caps Capabilities) Has(c Capabilities) bool {
	return caps&c == c
}

// Tags returns the capability tags in canonical order.
func (caps Capabilities) Tags() []string {
	tags := []string{}
	for _, t := range capabilityTags {
		if caps.Has(t.cap) {
			tags = append(tags, t.tag)
		}
	}
	return tags
}

// String returns the tags joined with "-", or "plain" for no capabilities.
func (caps Capabilities) String() string {
	if caps == 0 {
		return "plain"
	}
	return strings.Join(caps.Tags(), "-")
}

// MarshalJSON encodes the set as a list of tags.
func (caps Capabilities) MarshalJSON() ([]byte, error) {
	return json.Marshal(caps.Tags())
}

// UnmarshalJSON decodes a list of tags. Unknown tags are ignored.
func (caps *Capabilities) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*caps = ParseCapabilities(strings.Join(tags, " "))
	return nil
}

// WidthAuto is the width sentinel meaning the browser sizes the column.
const WidthAuto = "auto"

// Column describes one data column. The order of columns in a list is the
// display order.
type Column struct {
	Key     string        `json:"key"`
	Caps    Capabilities  `json:"type"`
	Label   string        `json:"label"`
	Width   string        `json:"width"`
	Options ColumnOptions `json:"options"`
}

// ColumnOptions holds the optional per-column settings.
type ColumnOptions struct {
	// Order is an explicit ordering of values. Listed values sort before
	// unlisted ones, in list order.
	Order []string `json:"order,omitempty"`

	// SortPriority places the column in the fallback sort applied after
	// grouping and user sort keys. Lower values come first.
	SortPriority *int `json:"sortPriority,omitempty"`

	// Extra keeps unrecognized options verbatim.
	Extra map[string]string `json:"extra,omitempty"`
}

// IsAutoWidth reports whether the column has no explicit width.
func (c *Column) IsAutoWidth() bool {
	return c.Width == "" || strings.EqualFold(c.Width, WidthAuto)
}

// OrderIndex returns the position of value in the column's custom order,
// or -1 when the value is not listed.
func (c *Column) OrderIndex(value string) int {
	for i, v := range c.Options.Order {
		if v == value {
			return i
		}
	}
	return -1
}

// Validate returns an error if the column contains invalid fields.
func (c *Column) Validate() error {
	if c.Key == "" {
		return Errorf(EINVALID, "column key required")
	}
	return nil
}

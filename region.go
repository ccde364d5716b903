package flexlist

import (
	"fmt"
	"strings"
)

// Sentinel markers delimiting the two regions of a rendered page.
const (
	MarkerConfigStart = "CONFIG_START"
	MarkerConfigEnd   = "CONFIG_END"
	MarkerDataStart   = "DATA_START"
	MarkerDataEnd     = "DATA_END"
)

// SentinelComment returns the HTML comment a host emits for marker.
func SentinelComment(marker string) string {
	return fmt.Sprintf("<!-- DATATABLE_%s -->", marker)
}

// Region identifies one of the two sentinel-delimited spans of a page.
type Region int

// Regions.
const (
	RegionConfig Region = iota
	RegionData
)

// Markers returns the start and end markers of the region.
func (r Region) Markers() (start, end string) {
	if r == RegionData {
		return MarkerDataStart, MarkerDataEnd
	}
	return MarkerConfigStart, MarkerConfigEnd
}

// String returns "config" or "data".
func (r Region) String() string {
	if r == RegionData {
		return "data"
	}
	return "config"
}

// missingCode returns the error code reported when the region is absent.
func (r Region) missingCode() string {
	if r == RegionData {
		return EMISSINGDATA
	}
	return EMISSINGCONFIG
}

// LocateRegion returns the inner markup of the first span of r in html.
// The span runs from the first start marker to the next end marker after
// it. When a marker sits inside an HTML comment the comment delimiters are
// excluded, so the returned fragment holds only the markup between the two
// comments.
func LocateRegion(html string, r Region) (string, error) {
	startMarker, endMarker := r.Markers()

	i := strings.Index(html, startMarker)
	if i < 0 {
		return "", Errorf(r.missingCode(), "%s region not found", r)
	}
	begin := i + len(startMarker)

	j := strings.Index(html[begin:], endMarker)
	if j < 0 {
		return "", Errorf(r.missingCode(), "%s region not terminated", r)
	}
	end := begin + j

	inner := html[begin:end]

	// Drop the tail of a comment wrapping the start marker.
	if open := strings.LastIndex(html[:i], "<!--"); open >= 0 && !strings.Contains(html[open:i], "-->") {
		if k := strings.Index(inner, "-->"); k >= 0 {
			inner = inner[k+len("-->"):]
		}
	}

	// Drop the head of a comment wrapping the end marker.
	if k := strings.LastIndex(inner, "<!--"); k >= 0 && !strings.Contains(inner[k:], "-->") {
		inner = inner[:k]
	}

	return strings.TrimSpace(inner), nil
}

package query

import (
	"cmp"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/flexlist"
	"golang.org/x/text/collate"
)

// leadingNumber matches the longest numeric prefix of a value, the way
// browsers read a number out of free text.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// parseNumber reads the leading number of s. It reports false when s does
// not start with a number.
func parseNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// compareOrder compares a and b by their position in the column's custom
// order. Listed values come before unlisted ones. It reports false when
// neither value is listed.
func compareOrder(col *flexlist.Column, a, b string) (int, bool) {
	if len(col.Options.Order) == 0 {
		return 0, false
	}
	ia, ib := col.OrderIndex(a), col.OrderIndex(b)
	switch {
	case ia >= 0 && ib >= 0:
		return cmp.Compare(ia, ib), true
	case ia >= 0:
		return -1, true
	case ib >= 0:
		return 1, true
	}
	return 0, false
}

// compareValues orders two stripped cell values of col: custom order
// first, then numerically when both start with a number, then by locale
// collation.
func compareValues(col *flexlist.Column, c *collate.Collator, a, b string) int {
	if r, ok := compareOrder(col, a, b); ok {
		return r
	}
	if na, ok := parseNumber(a); ok {
		if nb, ok := parseNumber(b); ok {
			return cmp.Compare(na, nb)
		}
	}
	return c.CompareString(a, b)
}

// compareOptions orders filter option values: custom order first, then
// locale collation.
func compareOptions(col *flexlist.Column, c *collate.Collator, a, b string) int {
	if r, ok := compareOrder(col, a, b); ok {
		return r
	}
	return c.CompareString(a, b)
}

package sqlite

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timestamp stores a time as RFC3339 text in UTC.
type timestamp time.Time

// Scan implements sql.Scanner.
func (t *timestamp) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("timestamp: unsupported type %T", src)
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = timestamp(parsed)
	return nil
}

// Value implements driver.Valuer.
func (t timestamp) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(time.RFC3339), nil
}

// limitOffset returns a LIMIT/OFFSET clause and its arguments. A limit of
// zero or less means no limit.
func limitOffset(limit, offset int) (string, []any) {
	if limit <= 0 && offset <= 0 {
		return "", nil
	}
	if limit <= 0 {
		limit = -1
	}
	return " LIMIT ? OFFSET ?", []any{limit, max(offset, 0)}
}

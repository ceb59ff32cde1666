package employee

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts RFC3339 or YYYY-MM-DD. The calendar date is taken as
// written, without converting time zones.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, value)
}

// FormatDate renders the wire form of a stored date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// dateDest scans a date column into a *string field. Drivers hand back
// time.Time, or text when the store keeps dates as strings.
type dateDest struct {
	dst **string
}

func (d *dateDest) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d.dst = nil
		return nil
	case time.Time:
		s := FormatDate(v)
		*d.dst = &s
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
}

func (d *dateDest) scanText(v string) error {
	if t, err := ParseDate(v); err == nil {
		s := FormatDate(t)
		*d.dst = &s
		return nil
	}
	if len(v) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, v[:len(dateLayout)]); err == nil {
			s := FormatDate(t)
			*d.dst = &s
			return nil
		}
	}
	return fmt.Errorf("stored date %q is not a calendar date", v)
}

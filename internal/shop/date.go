package shop

import (
	"fmt"
	"time"
)

// DateLayout is the canonical transaction date format. Range filters compare
// dates as strings, which is only correct for this zero-padded layout.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a real calendar date in canonical form.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// ParseDate validates s and returns it unchanged.
func ParseDate(s string) (string, error) {
	if !ValidDate(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return s, nil
}

// FormatDate renders t in the canonical layout using t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange lists every calendar date from start to end inclusive. It is
// empty when start is after end.
func DateRange(start, end string) ([]string, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}
	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// InRange reports start <= date <= end using string comparison.
func InRange(date, start, end string) bool {
	return date >= start && date <= end
}

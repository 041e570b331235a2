package builder

import (
	"errors"
	"strings"
	"time"
)

const periodLayout = "Jan 2006"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM or YYYY-MM-DD")

// FormatPeriod renders an experience period. A current position ignores end.
func FormatPeriod(start, end time.Time, current bool) string {
	if start.IsZero() {
		return ""
	}
	s := start.Format(periodLayout)
	switch {
	case current:
		return s + " - Present"
	case !end.IsZero():
		return s + " - " + end.Format(periodLayout)
	default:
		return s
	}
}

// ParseDate accepts the date picker's "YYYY-MM-DD" or a bare "YYYY-MM".
// An empty string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

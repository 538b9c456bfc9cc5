// Package timefmt parses and formats timeline timestamps in their canonical
// UTC form (RFC 3339 with a trailing "Z").
package timefmt

import (
	"strings"
	"time"
)

// Layouts accepted for timestamps that carry no UTC offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse reads an ISO-8601 timestamp. Timestamps without an offset are taken
// as UTC. An empty or unparseable value yields now(). The result is in UTC.
func Parse(s string, now func() time.Time) time.Time {
	t, ok := ParseStrict(s)
	if !ok {
		if now == nil {
			now = time.Now
		}
		return now().UTC()
	}
	return t
}

// ParseStrict is Parse without the fallback.
func ParseStrict(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Format renders t in canonical UTC form.
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromHours converts fractional hours to a Duration.
func FromHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

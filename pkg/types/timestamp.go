package types

import (
	"strings"
	"time"
)

// Timestamp layouts accepted on input. The store writes the space-separated
// layout in UTC; scrapers and cached rows may carry the ISO 'T' form.
const (
	TimestampLayout    = "2006-01-02 15:04:05"
	TimestampLayoutISO = "2006-01-02T15:04:05"
)

// ParseTimestamp normalizes a timestamp string to a UTC instant. Both the
// space-separated and the ISO 'T'-separated layouts are accepted; anything
// else yields (zero, false). A malformed timestamp is absent, not an error.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{TimestampLayout, TimestampLayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a UTC instant in the canonical storage layout.
// Sub-second precision is dropped; parse(format(t)) is lossless to the
// second.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

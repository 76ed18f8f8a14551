package types

import (
	"testing"
	"time"
)

func TestParseTimestamp_Layouts(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"space separator", "2025-03-01 14:30:05", time.Date(2025, 3, 1, 14, 30, 5, 0, time.UTC), true},
		{"T separator", "2025-03-01T14:30:05", time.Date(2025, 3, 1, 14, 30, 5, 0, time.UTC), true},
		{"leading whitespace", "  2025-03-01 14:30:05", time.Date(2025, 3, 1, 14, 30, 5, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"date only", "2025-03-01", time.Time{}, false},
		{"garbage", "not a timestamp", time.Time{}, false},
		{"unix seconds", "1719854405", time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tc.input)
			if ok != tc.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	inputs := []string{
		"2024-01-15 08:00:00",
		"2024-01-15T08:00:00",
		"1999-12-31 23:59:59",
	}
	for _, in := range inputs {
		first, ok := ParseTimestamp(in)
		if !ok {
			t.Fatalf("ParseTimestamp(%q) failed", in)
		}
		second, ok := ParseTimestamp(FormatTimestamp(first))
		if !ok {
			t.Fatalf("re-parse of formatted %q failed", in)
		}
		if !first.Equal(second) {
			t.Errorf("round trip of %q: %v != %v", in, first, second)
		}
	}
}

func TestFormatTimestamp_UTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	local := time.Date(2025, 6, 1, 12, 0, 0, 0, loc)
	got := FormatTimestamp(local)
	if got != "2025-06-01 11:00:00" {
		t.Errorf("FormatTimestamp = %q, want UTC-normalized value", got)
	}
}

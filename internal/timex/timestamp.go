package timex

import (
	"fmt"
	"strings"
	"time"
)

// Accepted timestamp layouts, most specific first. Task dates were written
// both as plain dates and as "date time" strings before RFC 3339 became the
// canonical form.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses any accepted layout and returns the instant in UTC.
// Layouts without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp renders t in the canonical RFC 3339 form (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

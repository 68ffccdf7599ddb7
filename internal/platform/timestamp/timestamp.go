// Package timestamp reads and writes the ISO-8601 forms stored in the
// session ledger and sentinel files.
package timestamp

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the offset-aware form written for new records.
const Layout = "2006-01-02T15:04:05.999999-07:00"

var offsetLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse accepts offset-aware, naive, and trailing-Z timestamps. Naive values
// are returned in UTC.
func Parse(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// ParseWall parses raw and drops its offset, keeping the wall-clock reading.
func ParseWall(raw string) (time.Time, error) {
	t, err := Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	return Wall(t), nil
}

// Wall re-expresses the wall-clock reading of t in UTC so readings taken
// under different offsets compare as they read on the clock.
func Wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

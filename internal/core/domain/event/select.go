package event

import (
	"sort"
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

const GRACE_PERIOD = time.Hour
const DEFAULT_WINDOW_DAYS = 7

// Layouts tried for start values that carry no UTC offset.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseStart resolves a raw ISO-8601 start value into an instant in loc.
// Values without an offset are read as wall clock time in loc.
func ParseStart(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Window returns the open interval (from, to) of eligible start instants.
func Window(now time.Time, windowDays int, loc *time.Location) (from time.Time, to time.Time) {
	localNow := now.In(loc)
	from = localNow.Add(-GRACE_PERIOD)
	to = carbon.Time2Carbon(localNow).AddDays(windowDays).Carbon2Time().In(loc)
	return from, to
}

// Select returns the records starting strictly inside the active window,
// ordered by start. Records with an unparseable start are dropped.
func Select(records []Record, now time.Time, windowDays int, loc *time.Location) []Filtered {
	from, to := Window(now, windowDays, loc)

	selected := make([]Filtered, 0, len(records))
	for _, r := range records {
		start, ok := ParseStart(r.Start, loc)
		if !ok {
			continue
		}
		if !start.After(from) || !start.Before(to) {
			continue
		}
		selected = append(selected, Filtered{Record: r, Start: start})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Start.Before(selected[j].Start)
	})
	return selected
}

// Package present turns extraction results and metrics into display values
// for the dashboard templates and CLI output.
package present

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
)

// Missing is shown for absent or unusable values.
const Missing = "-"

// TimeLayout is the absolute part of a formatted timestamp.
const TimeLayout = "Jan 2, 2006, 3:04:05 PM"

// Epoch values above this are milliseconds, below it seconds.
const epochMillisThreshold = 1e12

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// FormatDuration renders a number of seconds: "0.50s" under a minute,
// "2 min 5 sec" under an hour, "2 hr 3 min" otherwise.
func FormatDuration(v any) string {
	s, ok := toNumber(v)
	if !ok {
		return Missing
	}
	switch {
	case s < 60:
		return fmt.Sprintf("%.2fs", s)
	case s < 3600:
		mins := math.Floor(s / 60)
		secs := math.Round(math.Mod(s, 60))
		return fmt.Sprintf("%d min %d sec", int64(mins), int64(secs))
	default:
		hrs := math.Floor(s / 3600)
		mins := math.Round(math.Mod(s, 3600) / 60)
		return fmt.Sprintf("%d hr %d min", int64(hrs), int64(mins))
	}
}

// FormatTime renders an epoch number or date string as an absolute time in
// now's location followed by a relative one, e.g.
// "May 1, 2024, 10:00:00 AM (3 hours ago)".
func FormatTime(v any, now time.Time) string {
	if v == nil {
		return Missing
	}
	t, ok := ParseTime(v, now.Location())
	if !ok {
		switch v.(type) {
		case string, float64, float32, int, int64, int32, json.Number:
			return Missing
		default:
			return fmt.Sprint(v)
		}
	}
	return t.In(now.Location()).Format(TimeLayout) + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}

// ParseTime interprets v as an epoch number (seconds, or milliseconds when
// above 1e12) or a date string. Strings without a zone are read in loc.
func ParseTime(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64, float32, int, int64, int32, json.Number:
		n, err := cast.ToFloat64E(t)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return time.Time{}, false
		}
		if n > epochMillisThreshold {
			return time.UnixMilli(int64(n)), true
		}
		sec, frac := math.Modf(n)
		return time.Unix(int64(sec), int64(frac*1e9)), true
	default:
		return time.Time{}, false
	}
}

// FormatNumber renders a number the way a text field shows it: no
// trailing zeros, no exponent for ordinary magnitudes.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatPercent renders a value already scaled to 0-100.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

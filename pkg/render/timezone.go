package render

import (
	"fmt"
	"strings"
	"time"
	// Embedded zoneinfo so IANA names resolve on hosts without a system database
	_ "time/tzdata"

	errs "mastodiary/pkg/errors"
)

// wallClockLayouts are accepted for timestamps that carry no UTC offset
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const wallClockKey = "2006-01-02T15:04:05.999999999"

// LoadLocation resolves an IANA timezone name. An empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeInvalidTimezone, fmt.Sprintf("unknown timezone %q", name), err)
	}
	return loc, nil
}

// LocalTime converts a wire timestamp into the display timezone.
// RFC 3339 values are converted directly. Values without an offset are read
// as wall-clock time in the display timezone, taking the earlier instant when
// the clock was turned back. Times skipped by a forward change and values that
// do not parse fall back to the current time.
func (r *Renderer) LocalTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(r.loc)
	}

	for _, layout := range wallClockLayouts {
		wall, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if t, ok := resolveWallClock(wall, r.loc); ok {
			return t
		}
		r.logger.WarnWithFields("timestamp falls in a daylight saving gap, using current time", map[string]interface{}{
			"timestamp": raw,
			"timezone":  r.loc.String(),
		})
		return r.now().In(r.loc)
	}

	r.logger.WarnWithFields("unparseable timestamp, using current time", map[string]interface{}{
		"timestamp": raw,
	})
	return r.now().In(r.loc)
}

// resolveWallClock finds the earliest instant whose local time in loc equals
// the wall clock reading of wall (parsed as UTC). It reports false when no
// instant shows that reading.
func resolveWallClock(wall time.Time, loc *time.Location) (time.Time, bool) {
	want := wall.Format(wallClockKey)

	var best time.Time
	found := false
	for _, probe := range []time.Time{wall.Add(-12 * time.Hour), wall, wall.Add(12 * time.Hour)} {
		_, offset := probe.In(loc).Zone()
		candidate := wall.Add(-time.Duration(offset) * time.Second).In(loc)
		if candidate.Format(wallClockKey) != want {
			continue
		}
		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

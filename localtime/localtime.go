// Package localtime normalizes user-supplied (date, time, timezone) triples
// into absolute instants for the scheduling backend.
package localtime

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // zone data fallback for hosts without a system zoneinfo DB
)

const layout = "2006-01-02 15:04"

var (
	// ErrInvalidTimeZone reports an unresolvable IANA zone name.
	ErrInvalidTimeZone = errors.New("invalid timezone")

	// ErrInvalidDateTime reports a date/time pair that does not parse as
	// YYYY-MM-DD HH:MM.
	ErrInvalidDateTime = errors.New("invalid date or time")
)

// Slot is a localized start instant and, when a duration was given, the
// matching end instant.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Normalize resolves the zone name, combines date and time into an absolute
// instant in that zone, and computes the end instant start+duration.
//
// Ambiguous local times around DST transitions resolve to whatever the zone
// facility picks natively; there is no explicit disambiguation.
func Normalize(date, clock, zone string, durationMinutes int) (Slot, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidTimeZone, zone)
	}

	start, err := time.ParseInLocation(layout, date+" "+clock, loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
	}

	slot := Slot{Start: start}
	if durationMinutes > 0 {
		slot.End = start.Add(time.Duration(durationMinutes) * time.Minute)
	}
	return slot, nil
}

// ISO formats an instant as ISO-8601 carrying its UTC offset, the form the
// scheduling backend expects.
func ISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Package timeline holds the interval arithmetic behind the time range picker:
// mapping dates onto a rail, generating ticks, projecting blocked intervals and
// deciding whether a selection overlaps any of them.
package timeline

import (
	"fmt"
	"time"
)

// Interval is an ordered pair of instants. A well formed interval has
// Start <= End and neither side is the zero time.
type Interval struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// NewInterval returns the interval [start, end] or ErrMalformedInterval when
// end precedes start.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: %s", ErrMalformedInterval, iv)
	}
	return iv, nil
}

// Valid reports whether the interval is well formed.
func (i Interval) Valid() bool {
	if i.Start.IsZero() || i.End.IsZero() {
		return false
	}
	return !i.End.Before(i.Start)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Values returns both bounds as raw millisecond values.
func (i Interval) Values() (int64, int64) {
	return Value(i.Start), Value(i.End)
}

// In returns the interval with both bounds expressed in loc.
func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

func (i Interval) String() string {
	return fmt.Sprintf("%s .. %s", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// Value is the raw comparable number of a time point: milliseconds since the
// Unix epoch.
func Value(t time.Time) int64 {
	return t.UnixMilli()
}

// TimeOf converts a raw value back to an instant in loc.
func TimeOf(v int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(v).In(loc)
}

// Day returns the calendar day containing t: midnight to the last millisecond
// before the next midnight.
func Day(t time.Time) Interval {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	next := time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
	return Interval{Start: start, End: next.Add(-time.Millisecond)}
}

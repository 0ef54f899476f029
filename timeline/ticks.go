package timeline

import (
	"iter"
	"math"
	"slices"
	"sort"
	"time"
)

// TickFormatter renders a tick label.
type TickFormatter func(time.Time) string

// FormatTick is the default 24-hour HH:mm label.
func FormatTick(t time.Time) string {
	return t.Format("15:04")
}

type timeUnit int

const (
	unitMillisecond timeUnit = iota
	unitSecond
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

type tickInterval struct {
	unit     timeUnit
	step     int
	duration time.Duration
}

// Candidate spacings, ascending by duration.
var tickIntervals = []tickInterval{
	{unitSecond, 1, time.Second},
	{unitSecond, 5, 5 * time.Second},
	{unitSecond, 15, 15 * time.Second},
	{unitSecond, 30, 30 * time.Second},
	{unitMinute, 1, time.Minute},
	{unitMinute, 5, 5 * time.Minute},
	{unitMinute, 15, 15 * time.Minute},
	{unitMinute, 30, 30 * time.Minute},
	{unitHour, 1, time.Hour},
	{unitHour, 3, 3 * time.Hour},
	{unitHour, 6, 6 * time.Hour},
	{unitHour, 12, 12 * time.Hour},
	{unitDay, 1, durationDay},
	{unitDay, 2, 2 * durationDay},
	{unitWeek, 1, durationWeek},
	{unitMonth, 1, durationMonth},
	{unitMonth, 3, 3 * durationMonth},
	{unitYear, 1, durationYear},
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks yields roughly count evenly spaced instants within domain, aligned
// on calendar boundaries of the domain's location (whole hours, days,
// months...). The spacing is the candidate closest to the domain length
// divided by count, so the number of ticks is close to, not exactly, count.
// The sequence is ascending, duplicate free, and can be ranged over any
// number of times. Counts above MaxTicksNumber are treated as MaxTicksNumber.
func Ticks(domain Interval, count int) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if count <= 0 || !domain.Valid() {
			return
		}
		count = min(count, MaxTicksNumber)
		start, stop := domain.Start, domain.End
		ti := chooseTickInterval(start, stop, count)

		if ti.unit == unitMillisecond {
			rangeMilliseconds(start, stop, int64(ti.step), yield)
			return
		}

		t := floorTo(start, ti.unit)
		if t.Before(start) {
			t = offset(t, ti.unit, 1)
		}
		var prev time.Time
		for !t.After(stop) {
			if (ti.step == 1 || field(t, ti.unit)%ti.step == 0) && (prev.IsZero() || t.After(prev)) {
				if !yield(t) {
					return
				}
				prev = t
			}
			t = offset(t, ti.unit, 1)
		}
	}
}

// TickValues collects Ticks into a slice.
func TickValues(domain Interval, count int) []time.Time {
	return slices.Collect(Ticks(domain, count))
}

func chooseTickInterval(start, stop time.Time, count int) tickInterval {
	target := float64(stop.Sub(start)) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return float64(tickIntervals[i].duration) > target
	})

	switch i {
	case len(tickIntervals):
		years := float64(durationYear.Milliseconds())
		step := tickStep(float64(Value(start))/years, float64(Value(stop))/years, count)
		return tickInterval{unit: unitYear, step: max(1, int(step))}
	case 0:
		step := tickStep(float64(Value(start)), float64(Value(stop)), count)
		return tickInterval{unit: unitMillisecond, step: max(1, int(step))}
	}

	lo, hi := tickIntervals[i-1], tickIntervals[i]
	if target/float64(lo.duration) < float64(hi.duration)/target {
		return lo
	}
	return hi
}

// tickStep returns a 1, 2 or 5 times a power of ten step splitting
// [start, stop] into about count pieces.
func tickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / float64(count)
	if step0 == 0 || math.IsNaN(step0) || math.IsInf(step0, 0) {
		return 0
	}
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	switch e := step0 / step1; {
	case e >= e10:
		step1 *= 10
	case e >= e5:
		step1 *= 5
	case e >= e2:
		step1 *= 2
	}
	return step1
}

func rangeMilliseconds(start, stop time.Time, step int64, yield func(time.Time) bool) {
	loc := start.Location()
	first := Value(start)
	if time.UnixMilli(first).Before(start) {
		first++
	}
	if r := first % step; r != 0 {
		if r < 0 {
			r += step
		}
		first += step - r
	}
	last := Value(stop)
	for v := first; v <= last; v += step {
		if !yield(time.UnixMilli(v).In(loc)) {
			return
		}
	}
}

func floorTo(t time.Time, u timeUnit) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch u {
	case unitSecond:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	case unitMinute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	case unitHour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case unitDay:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case unitWeek:
		// weeks start on Sunday
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case unitMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case unitYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return time.UnixMilli(t.UnixMilli()).In(loc)
}

func offset(t time.Time, u timeUnit, n int) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch u {
	case unitSecond:
		return t.Add(time.Duration(n) * time.Second)
	case unitMinute:
		return t.Add(time.Duration(n) * time.Minute)
	case unitHour:
		return t.Add(time.Duration(n) * time.Hour)
	case unitDay:
		return time.Date(y, mo, d+n, 0, 0, 0, 0, loc)
	case unitWeek:
		return time.Date(y, mo, d+7*n, 0, 0, 0, 0, loc)
	case unitMonth:
		return time.Date(y, mo+time.Month(n), 1, 0, 0, 0, 0, loc)
	case unitYear:
		return time.Date(y+n, time.January, 1, 0, 0, 0, 0, loc)
	}
	return t.Add(time.Duration(n) * time.Millisecond)
}

// field is the calendar field a stepped interval filters on.
func field(t time.Time, u timeUnit) int {
	switch u {
	case unitSecond:
		return t.Second()
	case unitMinute:
		return t.Minute()
	case unitHour:
		return t.Hour()
	case unitDay:
		return t.Day() - 1
	case unitMonth:
		return int(t.Month()) - 1
	case unitYear:
		return t.Year()
	}
	return 0
}

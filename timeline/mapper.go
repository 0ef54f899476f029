package timeline

import (
	"math"
	"time"
)

// Point is a position on the rail. Percent is for layout only; every
// comparison goes through Value.
type Point struct {
	Percent float64 `json:"percent"`
	Value   int64   `json:"value"`
}

// Project places t on a rail starting at domainStart and spanning
// domainLength. The length is measured in whole milliseconds and must be
// positive.
func Project(t, domainStart time.Time, domainLength time.Duration) (Point, error) {
	lengthMs := domainLength.Milliseconds()
	if lengthMs <= 0 {
		return Point{}, &DomainError{Start: domainStart, End: domainStart.Add(domainLength)}
	}
	return project(t, Value(domainStart), lengthMs), nil
}

func project(t time.Time, startMs, lengthMs int64) Point {
	v := Value(t)
	return Point{
		Percent: float64(v-startMs) / float64(lengthMs) * 100,
		Value:   v,
	}
}

// Mapper converts between instants and rail positions for one domain.
type Mapper struct {
	domain   Interval
	startMs  int64
	endMs    int64
	lengthMs int64
}

// NewMapper returns a Mapper for domain, or a *DomainError when the domain is
// shorter than a millisecond.
func NewMapper(domain Interval) (Mapper, error) {
	startMs, endMs := domain.Values()
	if domain.Start.IsZero() || domain.End.IsZero() || endMs-startMs <= 0 {
		return Mapper{}, &DomainError{Start: domain.Start, End: domain.End}
	}
	return Mapper{
		domain:   domain,
		startMs:  startMs,
		endMs:    endMs,
		lengthMs: endMs - startMs,
	}, nil
}

// Domain returns the interval the mapper spans.
func (m Mapper) Domain() Interval {
	return m.domain
}

// Project places t on the rail. Points outside the domain get a percent
// outside [0, 100].
func (m Mapper) Project(t time.Time) Point {
	return project(t, m.startMs, m.lengthMs)
}

// ProjectValue places a raw value on the rail.
func (m Mapper) ProjectValue(v int64) Point {
	return Point{
		Percent: float64(v-m.startMs) / float64(m.lengthMs) * 100,
		Value:   v,
	}
}

// ValueAt is the inverse of Project: the raw value under percent, with
// percent clamped to the rail.
func (m Mapper) ValueAt(percent float64) int64 {
	percent = clampPercent(percent)
	return m.startMs + int64(math.Round(percent/100*float64(m.lengthMs)))
}

// PointAt returns the point under percent.
func (m Mapper) PointAt(percent float64) Point {
	return Point{Percent: clampPercent(percent), Value: m.ValueAt(percent)}
}

// Clamp limits v to the domain.
func (m Mapper) Clamp(v int64) int64 {
	if v < m.startMs {
		return m.startMs
	}
	if v > m.endMs {
		return m.endMs
	}
	return v
}

// ClampTime limits t to the domain.
func (m Mapper) ClampTime(t time.Time) time.Time {
	if t.Before(m.domain.Start) {
		return m.domain.Start
	}
	if t.After(m.domain.End) {
		return m.domain.End
	}
	return t
}

// Snap clamps v to the domain, then rounds it to the nearest multiple of step
// counted from the domain start, clamping again. A non-positive step only
// clamps. Clamping first keeps v-start within the domain length for any int64.
func (m Mapper) Snap(v int64, step time.Duration) int64 {
	v = m.Clamp(v)
	stepMs := step.Milliseconds()
	if stepMs <= 0 {
		return v
	}
	n := math.Round(float64(v-m.startMs) / float64(stepMs))
	return m.Clamp(m.startMs + int64(n)*stepMs)
}

// Time converts a raw value to an instant in the domain's location.
func (m Mapper) Time(v int64) time.Time {
	return TimeOf(v, m.domain.Start.Location())
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

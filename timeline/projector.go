package timeline

import (
	"fmt"

	"go.uber.org/zap"
)

// ProjectedInterval is a blocked interval clamped to the domain and placed on
// the rail. ID is a render key only.
type ProjectedInterval struct {
	ID     string `json:"id"`
	Source Point  `json:"source"`
	Target Point  `json:"target"`

	// Outside is set when the blocked interval shares no instant with the
	// domain; it has been collapsed onto the nearer bound. An interval that
	// only touches a bound is not outside.
	Outside bool `json:"outside,omitempty"`
}

// BlockedTrackID returns the render key of the blocked interval at index i.
func BlockedTrackID(i int) string {
	return fmt.Sprintf("blocked-track-%d", i)
}

// ProjectBlocked clamps each blocked interval to domain and converts it to
// rail coordinates. An empty input yields nil, meaning no restrictions.
//
// IDs follow input order. Malformed intervals are logged and skipped without
// shifting the IDs of the others.
func ProjectBlocked(blocked []Interval, domain Interval, logger *zap.Logger) ([]ProjectedInterval, error) {
	if len(blocked) == 0 {
		return nil, nil
	}
	m, err := NewMapper(domain)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	projected := make([]ProjectedInterval, 0, len(blocked))
	for i, b := range blocked {
		if !b.Valid() {
			logger.Warn("skipping malformed blocked interval",
				zap.Int("index", i), zap.Time("start", b.Start), zap.Time("end", b.End))
			continue
		}
		outside := b.Start.After(domain.End) || b.End.Before(domain.Start)
		start, end := m.ClampTime(b.Start), m.ClampTime(b.End)
		projected = append(projected, ProjectedInterval{
			ID:      BlockedTrackID(i),
			Source:  m.Project(start),
			Target:  m.Project(end),
			Outside: outside,
		})
	}
	return projected, nil
}

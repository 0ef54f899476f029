package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedInterval reports an interval whose end precedes its start or
	// which has a zero bound.
	ErrMalformedInterval = errors.New("timeline: malformed interval")

	// ErrDisabled is returned when a drag is started on a disabled controller.
	ErrDisabled = errors.New("timeline: controller is disabled")

	// ErrNotDragging is returned for move and end events outside a drag.
	ErrNotDragging = errors.New("timeline: no drag in progress")

	// ErrDragInProgress is returned when the selection is replaced mid-drag.
	ErrDragInProgress = errors.New("timeline: drag in progress")

	// ErrTooManyTicks reports a tick count above MaxTicksNumber.
	ErrTooManyTicks = errors.New("timeline: too many ticks requested")
)

// DomainError reports a timeline domain with zero or negative length. Nothing
// can be placed on such a rail.
type DomainError struct {
	Start time.Time
	End   time.Time
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("timeline: degenerate domain [%s, %s]: end must be after start",
		e.Start.Format(time.RFC3339Nano), e.End.Format(time.RFC3339Nano))
}

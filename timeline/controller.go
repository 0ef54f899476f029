package timeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultStep is the minimum movement of a handle.
	DefaultStep = 30 * time.Minute

	// DefaultTicksNumber is the requested tick count.
	DefaultTicksNumber = 48

	// MaxTicksNumber bounds the requested tick count.
	MaxTicksNumber = 1000
)

// State of a Controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Update is emitted on every intermediate move of a drag.
type Update struct {
	Error bool `json:"error"`
}

type (
	// ChangeFunc receives the committed selection at the end of a drag.
	ChangeFunc func(interval [2]time.Time)

	// UpdateFunc receives the validity of the live candidate during a drag.
	UpdateFunc func(Update)
)

// Options configures a Controller. Zero fields fall back to the defaults
// described on each field.
type Options struct {
	// Timeline is the whole rail. Required; see DefaultOptions.
	Timeline Interval

	// Selected is the initial selection; zero means the first hour of the
	// timeline.
	Selected Interval

	// DisabledIntervals are the blocked regions.
	DisabledIntervals []Interval

	// Step is the snapping granularity; zero means DefaultStep, negative
	// disables snapping.
	Step time.Duration

	// TicksNumber is the requested tick count; zero means DefaultTicksNumber.
	TicksNumber int

	// Disabled rejects drags.
	Disabled bool

	// Format renders tick labels; nil means FormatTick.
	Format TickFormatter

	OnChange ChangeFunc
	OnUpdate UpdateFunc

	Logger *zap.Logger
}

// DefaultOptions returns the options of a picker opened at now: the whole
// day of now, with the hour containing now selected.
func DefaultOptions(now time.Time) Options {
	y, m, d := now.Date()
	hour := time.Date(y, m, d, now.Hour(), 0, 0, 0, now.Location())
	return Options{
		Timeline:    Day(now),
		Selected:    Interval{Start: hour, End: hour.Add(time.Hour)},
		Step:        DefaultStep,
		TicksNumber: DefaultTicksNumber,
		Format:      FormatTick,
	}
}

// Controller holds the selection of one rail and turns drag events into
// update and change notifications. It is not safe for concurrent use; events
// must be delivered one at a time.
type Controller struct {
	mapper   Mapper
	blocked  []ProjectedInterval
	start    int64
	end      int64
	state    State
	invalid  bool
	disabled bool

	step        time.Duration
	ticksNumber int
	format      TickFormatter
	onChange    ChangeFunc
	onUpdate    UpdateFunc
	logger      *zap.Logger
}

// NewController validates opts and returns an idle controller. A timeline
// without positive length yields a *DomainError.
func NewController(opts Options) (*Controller, error) {
	c := &Controller{
		disabled:    opts.Disabled,
		step:        opts.Step,
		ticksNumber: opts.TicksNumber,
		format:      opts.Format,
		onChange:    opts.OnChange,
		onUpdate:    opts.OnUpdate,
		logger:      opts.Logger,
	}
	if c.step == 0 {
		c.step = DefaultStep
	}
	if c.ticksNumber == 0 {
		c.ticksNumber = DefaultTicksNumber
	}
	if c.format == nil {
		c.format = FormatTick
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.ticksNumber > MaxTicksNumber {
		return nil, fmt.Errorf("%w: %d", ErrTooManyTicks, c.ticksNumber)
	}

	if err := c.Reconfigure(opts.Timeline, opts.DisabledIntervals); err != nil {
		return nil, err
	}

	selected := opts.Selected
	if selected.Start.IsZero() && selected.End.IsZero() {
		selected = Interval{Start: opts.Timeline.Start, End: opts.Timeline.Start.Add(time.Hour)}
	}
	if err := c.SetSelected(selected); err != nil {
		return nil, err
	}
	return c, nil
}

// Reconfigure replaces the timeline and the blocked intervals. The current
// selection is clamped to the new timeline. On error the controller is left
// unchanged.
func (c *Controller) Reconfigure(timeline Interval, blocked []Interval) error {
	m, err := NewMapper(timeline)
	if err != nil {
		return err
	}
	projected, err := ProjectBlocked(blocked, timeline, c.logger)
	if err != nil {
		return err
	}
	c.mapper = m
	c.blocked = projected
	c.start, c.end = m.Clamp(c.start), m.Clamp(c.end)
	c.invalid = AnyInvalid(c.start, c.end, c.blocked)
	return nil
}

// SetSelected replaces the selection. It is rejected while dragging.
func (c *Controller) SetSelected(selected Interval) error {
	if c.state == Dragging {
		return ErrDragInProgress
	}
	if !selected.Valid() {
		return fmt.Errorf("%w: selection %s", ErrMalformedInterval, selected)
	}
	start, end := selected.Values()
	c.start, c.end = c.mapper.Clamp(start), c.mapper.Clamp(end)
	c.invalid = AnyInvalid(c.start, c.end, c.blocked)
	return nil
}

// SetDisabled toggles the controller. Disabling aborts a drag in progress
// without emitting a change.
func (c *Controller) SetDisabled(disabled bool) {
	c.disabled = disabled
	if disabled && c.state == Dragging {
		c.logger.Debug("drag aborted: controller disabled")
		c.state = Idle
	}
}

// DragStart moves the controller into Dragging.
func (c *Controller) DragStart() error {
	if c.disabled {
		return ErrDisabled
	}
	c.state = Dragging
	return nil
}

// Move handles an intermediate drag position. The raw values are ordered,
// snapped to the step and clamped to the timeline before validation. The
// update is also passed to OnUpdate.
func (c *Controller) Move(start, end int64) (Update, error) {
	if c.state != Dragging {
		return Update{}, ErrNotDragging
	}
	start, end = c.mapper.Snap(start, c.step), c.mapper.Snap(end, c.step)
	if start > end {
		start, end = end, start
	}
	c.start, c.end = start, end
	c.invalid = c.blocked != nil && AnyInvalid(c.start, c.end, c.blocked)

	u := Update{Error: c.invalid}
	if c.onUpdate != nil {
		c.onUpdate(u)
	}
	return u, nil
}

// DragEnd commits the selection, returns the controller to Idle and passes
// the committed interval to OnChange. Validity is not part of the change;
// the host decides what to do with an invalid selection.
func (c *Controller) DragEnd() ([2]time.Time, error) {
	if c.state != Dragging {
		return [2]time.Time{}, ErrNotDragging
	}
	c.state = Idle
	committed := [2]time.Time{c.mapper.Time(c.start), c.mapper.Time(c.end)}
	if c.onChange != nil {
		c.onChange(committed)
	}
	return committed, nil
}

// Validate reports whether [start, end] collides with a blocked interval
// without touching the selection.
func (c *Controller) Validate(start, end int64) bool {
	if c.blocked == nil {
		return false
	}
	return AnyInvalid(start, end, c.blocked)
}

// Hover returns the tooltip point under percent. Nothing is shown while a
// handle is active.
func (c *Controller) Hover(percent float64) (Point, bool) {
	if c.state == Dragging {
		return Point{}, false
	}
	return c.mapper.PointAt(percent), true
}

// Label renders v with the controller's tick formatter in the timeline's
// location.
func (c *Controller) Label(v int64) string {
	return c.format(c.mapper.Time(v))
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Disabled() bool {
	return c.disabled
}

// Invalid reports whether the current selection collides with a blocked
// interval.
func (c *Controller) Invalid() bool {
	return c.invalid
}

func (c *Controller) Timeline() Interval {
	return c.mapper.Domain()
}

// Selected returns the current selection in the timeline's location.
func (c *Controller) Selected() Interval {
	return Interval{Start: c.mapper.Time(c.start), End: c.mapper.Time(c.end)}
}

// Blocked returns the projected blocked intervals, nil when there are none.
func (c *Controller) Blocked() []ProjectedInterval {
	return c.blocked
}

package timeline

import "fmt"

// Handle is a draggable bound of the selection.
type Handle struct {
	ID string `json:"id"`
	Point
}

// Track is a segment of the rail between two points.
type Track struct {
	ID     string `json:"id"`
	Source Point  `json:"source"`
	Target Point  `json:"target"`
}

// Tick is a labelled reference point on the rail.
type Tick struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Point
}

// RenderModel is everything a renderer needs to draw the rail in its current
// state. It is recomputed on demand and never cached.
type RenderModel struct {
	Domain   [2]int64            `json:"domain"`
	Handles  []Handle            `json:"handles"`
	Track    Track               `json:"track"`
	Blocked  []ProjectedInterval `json:"blocked,omitempty"`
	Ticks    []Tick              `json:"ticks"`
	Step     int64               `json:"step"`
	Error    bool                `json:"error"`
	Disabled bool                `json:"disabled"`
	State    State               `json:"state"`
}

// Model computes the render model of the controller.
func (c *Controller) Model() RenderModel {
	source, target := c.mapper.ProjectValue(c.start), c.mapper.ProjectValue(c.end)
	start, end := c.mapper.Domain().Values()

	return RenderModel{
		Domain: [2]int64{start, end},
		Handles: []Handle{
			{ID: "handle-0", Point: source},
			{ID: "handle-1", Point: target},
		},
		Track:    Track{ID: "track-0", Source: source, Target: target},
		Blocked:  c.blocked,
		Ticks:    c.mapper.Ticks(c.ticksNumber, c.format),
		Step:     c.step.Milliseconds(),
		Error:    c.invalid,
		Disabled: c.disabled,
		State:    c.state,
	}
}

// Ticks places about count ticks on the rail, labelled by format (FormatTick
// when nil).
func (m Mapper) Ticks(count int, format TickFormatter) []Tick {
	if format == nil {
		format = FormatTick
	}
	ticks := []Tick{}
	for t := range Ticks(m.domain, count) {
		ticks = append(ticks, Tick{
			ID:    fmt.Sprintf("tick-%d", len(ticks)),
			Label: format(t),
			Point: m.Project(t),
		})
	}
	return ticks
}

package models

import (
	"time"

	"timerange/timeline"
)

// SessionRequest opens an interactive picker. Every field is optional; a
// missing timeline is the current day and a missing selection is the current
// hour.
type SessionRequest struct {
	CalendarID        string              `json:"calendarId"`
	TimelineInterval  []time.Time         `json:"timelineInterval" binding:"omitempty,len=2"`
	SelectedInterval  []time.Time         `json:"selectedInterval" binding:"omitempty,len=2"`
	DisabledIntervals []timeline.Interval `json:"disabledIntervals"`
	Step              int64               `json:"step"` // milliseconds
	TicksNumber       int                 `json:"ticksNumber"`
	Disabled          bool                `json:"disabled"`
	LabelLayout       string              `json:"labelLayout" binding:"max=64"` // Go time layout for tick and tooltip labels
}

// SessionView is the state of a session as returned to the host.
type SessionView struct {
	ID         string               `json:"id"`
	CalendarID string               `json:"calendarId,omitempty"`
	Model      timeline.RenderModel `json:"model"`
}

// DragMoveRequest carries the raw handle values of an intermediate move.
type DragMoveRequest struct {
	Values []int64 `json:"values" binding:"required,len=2"`
}

// ChangeEvent is emitted once a drag completes. It carries no validity
// flag; the last update of the drag tells the host whether it was valid.
type ChangeEvent struct {
	Interval [2]time.Time `json:"interval"`
}

// HoverResponse is the tooltip under the pointer.
type HoverResponse struct {
	Visible bool           `json:"visible"`
	Point   timeline.Point `json:"point,omitzero"`
	Label   string         `json:"label,omitempty"`
}

package models

import (
	"time"

	"timerange/timeline"
)

// BlockedInterval is a region of a calendar that must not be selected.
type BlockedInterval struct {
	ID         string    `bson:"id" json:"id"`                   // Unique identifier for the block
	CalendarID string    `bson:"calendar_id" json:"calendarId"`  // Calendar the block belongs to
	Start      time.Time `bson:"start" json:"start"`             // First blocked instant
	End        time.Time `bson:"end" json:"end"`                 // Last blocked instant
	Reason     string    `bson:"reason" json:"reason,omitempty"` // e.g. "maintenance", "fully booked"
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`    // Timestamp when the block was created
}

// Interval returns the blocked time range.
func (b BlockedInterval) Interval() timeline.Interval {
	return timeline.Interval{Start: b.Start, End: b.End}
}

// CreateBlockedRequest is the payload for blocking part of a calendar.
type CreateBlockedRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required,gtefield=Start"`
	Reason string    `json:"reason"`
}

package timerange

import (
	"context"
	"time"

	"timerange/models"
	"timerange/timeline"
)

// BlockedService manages the blocked intervals of calendars.
type BlockedService interface {
	AddBlocked(ctx context.Context, calendarID string, req models.CreateBlockedRequest) (*models.BlockedInterval, error)
	ListBlocked(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, error)
	DeleteBlocked(ctx context.Context, calendarID, blockID string) error
}

// SessionService keeps one picker controller per interactive session and
// feeds it the host's drag events.
type SessionService interface {
	CreateSession(ctx context.Context, req models.SessionRequest) (*models.SessionView, error)
	GetSession(id string) (*models.SessionView, error)
	RefreshSession(ctx context.Context, id string) (*models.SessionView, error)
	DragStart(id string) (*models.SessionView, error)
	DragMove(id string, start, end int64) (timeline.Update, error)
	DragEnd(id string) (*models.ChangeEvent, error)
	Hover(id string, percent float64) (*models.HoverResponse, error)
	DeleteSession(id string) error
	Count() int
}

// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"
	"time"

	"timerange/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BlockedRepository stores the blocked intervals of each calendar.
type BlockedRepository interface {
	Create(ctx context.Context, block *models.BlockedInterval) error
	// ListOverlapping returns the blocks of calendarID sharing time with
	// [from, to], ordered by start.
	ListOverlapping(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, error)
	Delete(ctx context.Context, calendarID, blockID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo constructs a BlockedRepository over the "blocked"
// collection of db.
func NewMongoBlockedRepo(db *mongo.Database) BlockedRepository {
	return &mongoBlockedRepo{
		coll: db.Collection("blocked"),
	}
}

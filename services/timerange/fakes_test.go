package timerange

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"timerange/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	blocks []models.BlockedInterval
	lists  int
	err    error
}

func (r *fakeRepo) Create(ctx context.Context, block *models.BlockedInterval) error {
	if r.err != nil {
		return r.err
	}
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	r.blocks = append(r.blocks, *block)
	return nil
}

func (r *fakeRepo) ListOverlapping(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, error) {
	r.lists++
	if r.err != nil {
		return nil, r.err
	}
	var out []models.BlockedInterval
	for _, b := range r.blocks {
		if b.CalendarID == calendarID && !b.Start.After(to) && !b.End.Before(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *fakeRepo) Delete(ctx context.Context, calendarID, blockID string) error {
	for i, b := range r.blocks {
		if b.ID == blockID && b.CalendarID == calendarID {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeCache struct {
	entries map[string][]models.BlockedInterval
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]models.BlockedInterval)}
}

func (c *fakeCache) Get(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	blocks, ok := c.entries[windowKey(calendarID, from, to)]
	return blocks, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, calendarID string, from, to time.Time, blocks []models.BlockedInterval) error {
	c.entries[windowKey(calendarID, from, to)] = blocks
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, calendarID string) error {
	prefix := strings.TrimSuffix(calendarPattern(calendarID), "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

var errBoom = errors.New("boom")

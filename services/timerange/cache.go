package timerange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"timerange/models"

	"github.com/go-redis/redis/v8"
)

// BlockedCache caches the blocked intervals of a calendar window.
type BlockedCache interface {
	Get(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, bool, error)
	Set(ctx context.Context, calendarID string, from, to time.Time, blocks []models.BlockedInterval) error
	Invalidate(ctx context.Context, calendarID string) error
}

type RedisBlockedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBlockedCache(client *redis.Client, ttl time.Duration) BlockedCache {
	return &RedisBlockedCache{client: client, ttl: ttl}
}

const cacheKeyPrefix = "blocked:"

// calendarKey escapes calendarID so it holds no glob metacharacters and no
// ':' separator. A pattern for one calendar then never matches another's keys.
func calendarKey(calendarID string) string {
	return cacheKeyPrefix + url.QueryEscape(calendarID)
}

func calendarPattern(calendarID string) string {
	return calendarKey(calendarID) + ":*"
}

func windowKey(calendarID string, from, to time.Time) string {
	return fmt.Sprintf("%s:%d:%d", calendarKey(calendarID), from.UnixMilli(), to.UnixMilli())
}

func (c *RedisBlockedCache) Get(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, bool, error) {
	val, err := c.client.Get(ctx, windowKey(calendarID, from, to)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var blocks []models.BlockedInterval
	if err := json.Unmarshal(val, &blocks); err != nil {
		return nil, false, err
	}
	return blocks, true, nil
}

func (c *RedisBlockedCache) Set(ctx context.Context, calendarID string, from, to time.Time, blocks []models.BlockedInterval) error {
	data, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, windowKey(calendarID, from, to), data, c.ttl).Err()
}

// Invalidate drops every cached window of calendarID.
func (c *RedisBlockedCache) Invalidate(ctx context.Context, calendarID string) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, calendarPattern(calendarID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

package timerange

import (
	"context"
	"errors"
	"fmt"
	"time"

	blockedRepo "timerange/database/repository/blocked"
	"timerange/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultBlockedService reads blocked intervals through an optional cache.
type DefaultBlockedService struct {
	Repo   blockedRepo.BlockedRepository
	Cache  BlockedCache
	Logger *zap.Logger
}

func (s *DefaultBlockedService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// AddBlocked stores a new blocked interval and drops the calendar's cached
// windows.
func (s *DefaultBlockedService) AddBlocked(ctx context.Context, calendarID string, req models.CreateBlockedRequest) (*models.BlockedInterval, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("%w: calendarId is required", ErrInvalidRequest)
	}
	if req.Start.IsZero() || req.End.IsZero() || req.End.Before(req.Start) {
		return nil, fmt.Errorf("%w: start must not be after end", ErrInvalidRequest)
	}

	block := &models.BlockedInterval{
		CalendarID: calendarID,
		Start:      req.Start,
		End:        req.End,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create blocked interval: %w", err)
	}
	s.invalidate(ctx, calendarID)
	return block, nil
}

// ListBlocked returns the calendar's blocked intervals overlapping
// [from, to], in start order.
func (s *DefaultBlockedService) ListBlocked(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, error) {
	logger := s.logger()
	if s.Cache != nil {
		blocks, ok, err := s.Cache.Get(ctx, calendarID, from, to)
		if err != nil {
			logger.Warn("blocked cache read failed", zap.String("calendarID", calendarID), zap.Error(err))
		} else if ok {
			return blocks, nil
		}
	}

	blocks, err := s.Repo.ListOverlapping(ctx, calendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked intervals: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, calendarID, from, to, blocks); err != nil {
			logger.Warn("blocked cache write failed", zap.String("calendarID", calendarID), zap.Error(err))
		}
	}
	return blocks, nil
}

// DeleteBlocked removes a blocked interval.
func (s *DefaultBlockedService) DeleteBlocked(ctx context.Context, calendarID, blockID string) error {
	if err := s.Repo.Delete(ctx, calendarID, blockID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBlockNotFound
		}
		return fmt.Errorf("failed to delete blocked interval: %w", err)
	}
	s.invalidate(ctx, calendarID)
	return nil
}

func (s *DefaultBlockedService) invalidate(ctx context.Context, calendarID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, calendarID); err != nil {
		s.logger().Warn("blocked cache invalidation failed", zap.String("calendarID", calendarID), zap.Error(err))
	}
}

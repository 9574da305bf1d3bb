package service

import (
	"context"
	"fmt"
	"time"

	"lifemin/internal/domain"
	"lifemin/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles statistics and the idle session sweep
type StatsService struct {
	cardRepo     repository.FlashcardRepository
	progressRepo repository.ProgressRepository
	logger       *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	cardRepo repository.FlashcardRepository,
	progressRepo repository.ProgressRepository,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		cardRepo:     cardRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// Summary collects points, streak and attempt accuracy for a user
func (s *StatsService) Summary(ctx context.Context, userID int64) (*domain.Summary, error) {
	if userID == 0 {
		return &domain.Summary{}, nil
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var summary domain.Summary
	summary.FlashcardCount, summary.CorrectAttempts, summary.WrongAttempts, err = s.cardRepo.GetAttemptTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt totals: %w", err)
	}

	if progress != nil {
		summary.Points = progress.Points
		summary.Streak = progress.Streak
		summary.LastQuizDate = progress.LastQuizDate
	}
	return &summary, nil
}

// SessionSweeper drops quiz runs idle since before the cutoff and reports how many
type SessionSweeper interface {
	SweepQuizRuns(cutoff time.Time) int
}

// SweepAbandoned discards quiz sessions idle for longer than ttl
func (s *StatsService) SweepAbandoned(sweeper SessionSweeper, ttl time.Duration, now time.Time) int {
	removed := sweeper.SweepQuizRuns(now.Add(-ttl))
	if removed > 0 {
		s.logger.Info("Discarded abandoned quiz sessions", zap.Int("count", removed))
	}
	return removed
}

package service

import (
	"context"
	"fmt"
	"time"

	"lifemin/internal/domain"
	"lifemin/internal/quiz"
	"lifemin/internal/repository"

	"go.uber.org/zap"
)

// SessionGenerator builds a quiz session from a deck
type SessionGenerator interface {
	Generate(cards []domain.Flashcard) (domain.Session, error)
}

// QuizService starts quiz sessions and records their results
type QuizService struct {
	cardRepo     repository.FlashcardRepository
	progressRepo repository.ProgressRepository
	generator    SessionGenerator
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

// NewQuizService creates a new quiz service. Quiz days are counted in loc.
func NewQuizService(
	cardRepo repository.FlashcardRepository,
	progressRepo repository.ProgressRepository,
	generator SessionGenerator,
	loc *time.Location,
	logger *zap.Logger,
) *QuizService {
	if loc == nil {
		loc = time.UTC
	}
	return &QuizService{
		cardRepo:     cardRepo,
		progressRepo: progressRepo,
		generator:    generator,
		location:     loc,
		now:          time.Now,
		logger:       logger,
	}
}

// Start builds a session from the user's cards, or from one deck when
// categoryID is set. Returns domain.ErrInsufficientData for small decks.
func (s *QuizService) Start(ctx context.Context, userID int64, categoryID string) (domain.Session, error) {
	if userID == 0 {
		return domain.Session{}, domain.ErrAuthRequired
	}

	var (
		cards []domain.Flashcard
		err   error
	)
	if categoryID != "" {
		cards, err = s.cardRepo.ListFlashcardsByCategory(ctx, userID, categoryID)
	} else {
		cards, err = s.cardRepo.ListFlashcards(ctx, userID)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to load flashcards: %w", err)
	}

	return s.generator.Generate(cards)
}

// Today returns the current quiz day
func (s *QuizService) Today() domain.Date {
	return domain.DateOf(s.now(), s.location)
}

// Finish scores a completed session and merges it into the stored progress.
//
// Store failures come back as *domain.PersistenceError. When only the write
// fails, the computed progress is returned together with the error.
func (s *QuizService) Finish(ctx context.Context, userID int64, correct int) (*domain.Progress, error) {
	if userID == 0 {
		return nil, domain.ErrAuthRequired
	}
	if correct < 0 {
		return nil, fmt.Errorf("%w: negative correct count %d", domain.ErrInvalidInput, correct)
	}

	prior, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to read progress", zap.Int64("user_id", userID), zap.Error(err))
		return nil, &domain.PersistenceError{Op: "read progress", Err: err}
	}

	now := s.now()
	next := quiz.Finish(correct, prior, domain.DateOf(now, s.location))
	next.UpdatedAt = now

	if err := s.progressRepo.MergeProgress(ctx, userID, quiz.Earned(correct), next); err != nil {
		s.logger.Warn("Failed to save progress",
			zap.Int64("user_id", userID),
			zap.Int("correct", correct),
			zap.Error(err),
		)
		return &next, &domain.PersistenceError{Op: "save progress", Err: err}
	}

	s.logger.Info("Quiz finished",
		zap.Int64("user_id", userID),
		zap.Int("correct", correct),
		zap.Int("points", next.Points),
		zap.Int("streak", next.Streak),
	)
	return &next, nil
}

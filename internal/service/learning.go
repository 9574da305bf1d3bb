package service

import (
	"context"
	"fmt"
	"strings"

	"lifemin/internal/domain"
	"lifemin/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// LearningService manages decks and flashcards
type LearningService struct {
	cardRepo     repository.FlashcardRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
	newID        func() (string, error)
}

// NewLearningService creates a new learning service
func NewLearningService(
	cardRepo repository.FlashcardRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) *LearningService {
	return &LearningService{
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		newID:        func() (string, error) { return gonanoid.New() },
	}
}

// AddCategory creates a deck
func (s *LearningService) AddCategory(ctx context.Context, userID int64, name, icon, color string) (*domain.Category, error) {
	if userID == 0 {
		return nil, domain.ErrAuthRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: deck name cannot be empty", domain.ErrInvalidInput)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate deck id: %w", err)
	}

	category := &domain.Category{
		ID:     id,
		UserID: userID,
		Name:   name,
		Icon:   icon,
		Color:  color,
	}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}
	return category, nil
}

// ListCategories returns user's decks, oldest first
func (s *LearningService) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.categoryRepo.ListCategories(ctx, userID)
}

// DeleteCategory removes a deck, keeping its cards
func (s *LearningService) DeleteCategory(ctx context.Context, userID int64, categoryID string) error {
	if userID == 0 {
		return domain.ErrAuthRequired
	}
	return s.categoryRepo.DeleteCategory(ctx, userID, categoryID)
}

// AddFlashcard validates and stores a new card with zeroed counters
func (s *LearningService) AddFlashcard(ctx context.Context, userID int64, categoryID, term, definition string, aiGenerated bool) (*domain.Flashcard, error) {
	if userID == 0 {
		return nil, domain.ErrAuthRequired
	}
	term = strings.TrimSpace(term)
	definition = strings.TrimSpace(definition)
	if term == "" || definition == "" {
		return nil, fmt.Errorf("%w: term and definition cannot be empty", domain.ErrInvalidInput)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate card id: %w", err)
	}

	card := &domain.Flashcard{
		ID:          id,
		UserID:      userID,
		CategoryID:  categoryID,
		Term:        term,
		Definition:  definition,
		AIGenerated: aiGenerated,
	}
	if err := s.cardRepo.CreateFlashcard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return card, nil
}

// ListFlashcards returns every card of the user, newest first
func (s *LearningService) ListFlashcards(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.cardRepo.ListFlashcards(ctx, userID)
}

// ListByCategory returns the cards of one deck, oldest first
func (s *LearningService) ListByCategory(ctx context.Context, userID int64, categoryID string) ([]domain.Flashcard, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.cardRepo.ListFlashcardsByCategory(ctx, userID, categoryID)
}

// DeleteFlashcard removes a card; domain.ErrNotFound if it does not exist
func (s *LearningService) DeleteFlashcard(ctx context.Context, userID int64, cardID string) error {
	if userID == 0 {
		return domain.ErrAuthRequired
	}
	return s.cardRepo.DeleteFlashcard(ctx, userID, cardID)
}

// RecordAttempt bumps the card's correct or wrong counter
func (s *LearningService) RecordAttempt(ctx context.Context, userID int64, cardID string, correct bool) error {
	if userID == 0 {
		return domain.ErrAuthRequired
	}
	if err := s.cardRepo.IncrementAttempt(ctx, userID, cardID, correct); err != nil {
		s.logger.Warn("Failed to record attempt",
			zap.Int64("user_id", userID),
			zap.String("card_id", cardID),
			zap.Error(err),
		)
		return &domain.PersistenceError{Op: "record attempt", Err: err}
	}
	return nil
}

// RandomFlashcard returns a random card for practice, nil when the deck is empty
func (s *LearningService) RandomFlashcard(ctx context.Context, userID int64) (*domain.Flashcard, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.cardRepo.GetRandomFlashcard(ctx, userID)
}

package repository

import (
	"context"

	"lifemin/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64, name string) error
}

// ProgressRepository reads and merges the per-user progress record
type ProgressRepository interface {
	// GetProgress returns nil when the user has never finished a quiz
	GetProgress(ctx context.Context, userID int64) (*domain.Progress, error)
	// MergeProgress adds earned points and overwrites streak and date,
	// leaving every other user field untouched
	MergeProgress(ctx context.Context, userID int64, earned int, p domain.Progress) error
}

// FlashcardRepository defines flashcard data operations
type FlashcardRepository interface {
	CreateFlashcard(ctx context.Context, card *domain.Flashcard) error
	ListFlashcards(ctx context.Context, userID int64) ([]domain.Flashcard, error)
	ListFlashcardsByCategory(ctx context.Context, userID int64, categoryID string) ([]domain.Flashcard, error)
	GetRandomFlashcard(ctx context.Context, userID int64) (*domain.Flashcard, error)
	IncrementAttempt(ctx context.Context, userID int64, cardID string, correct bool) error
	DeleteFlashcard(ctx context.Context, userID int64, cardID string) error
	GetAttemptTotals(ctx context.Context, userID int64) (cards, correct, wrong int, err error)
}

// CategoryRepository defines deck data operations
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, userID int64, categoryID string) error
}

// TaskRepository defines task data operations
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	ListTasksByDate(ctx context.Context, userID int64, date domain.Date, openOnly bool) ([]domain.Task, error)
	ToggleTask(ctx context.Context, userID, taskID int64) (bool, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
	GetDaysWithTasks(ctx context.Context, userID int64, limit, offset int) ([]domain.Day, error)
	GetTotalDaysCount(ctx context.Context, userID int64) (int, error)
}

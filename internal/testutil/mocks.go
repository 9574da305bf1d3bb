package testutil

import (
	"context"

	"lifemin/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mocks record calls without the context argument

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(ctx context.Context, userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64, name string) error {
	args := m.Called(userID, name)
	return args.Error(0)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, userID int64) (*domain.Progress, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockProgressRepository) MergeProgress(ctx context.Context, userID int64, earned int, p domain.Progress) error {
	args := m.Called(userID, earned, p)
	return args.Error(0)
}

// MockFlashcardRepository is a mock for FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockFlashcardRepository) ListFlashcards(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) ListFlashcardsByCategory(ctx context.Context, userID int64, categoryID string) ([]domain.Flashcard, error) {
	args := m.Called(userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) GetRandomFlashcard(ctx context.Context, userID int64) (*domain.Flashcard, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) IncrementAttempt(ctx context.Context, userID int64, cardID string, correct bool) error {
	args := m.Called(userID, cardID, correct)
	return args.Error(0)
}

func (m *MockFlashcardRepository) DeleteFlashcard(ctx context.Context, userID int64, cardID string) error {
	args := m.Called(userID, cardID)
	return args.Error(0)
}

func (m *MockFlashcardRepository) GetAttemptTotals(ctx context.Context, userID int64) (int, int, int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

// MockCategoryRepository is a mock for CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID int64, categoryID string) error {
	args := m.Called(userID, categoryID)
	return args.Error(0)
}

// MockTaskRepository is a mock for TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasksByDate(ctx context.Context, userID int64, date domain.Date, openOnly bool) ([]domain.Task, error) {
	args := m.Called(userID, date, openOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ToggleTask(ctx context.Context, userID, taskID int64) (bool, error) {
	args := m.Called(userID, taskID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, userID, taskID int64) error {
	args := m.Called(userID, taskID)
	return args.Error(0)
}

func (m *MockTaskRepository) GetDaysWithTasks(ctx context.Context, userID int64, limit, offset int) ([]domain.Day, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Day), args.Error(1)
}

func (m *MockTaskRepository) GetTotalDaysCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockTextGenerator is a mock for ai.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

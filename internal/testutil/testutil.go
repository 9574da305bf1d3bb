package testutil

import (
	"fmt"
	"time"

	"lifemin/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestFlashcard creates a test flashcard
func NewTestFlashcard(id string, userID int64, term, definition string) domain.Flashcard {
	return domain.Flashcard{
		ID:         id,
		UserID:     userID,
		Term:       term,
		Definition: definition,
		CreatedAt:  time.Now(),
	}
}

// NewTestDeck creates n cards with distinct terms and definitions
func NewTestDeck(userID int64, n int) []domain.Flashcard {
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = NewTestFlashcard(
			fmt.Sprintf("card%d", i+1), userID,
			fmt.Sprintf("term %d", i+1), fmt.Sprintf("definition %d", i+1),
		)
	}
	return cards
}

// NewTestTask creates a test task
func NewTestTask(id, userID int64, title string, date domain.Date) domain.Task {
	return domain.Task{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, taskCount int) domain.Day {
	return domain.Day{
		Date:      date,
		TaskCount: taskCount,
	}
}

// FixedClock returns a clock function that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

package quiz

import (
	"testing"

	"lifemin/internal/domain"

	"github.com/stretchr/testify/assert"
)

var today = domain.NewDate(2026, 10, 14)

func TestFinish(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		prior    *domain.Progress
		expected domain.Progress
	}{
		{
			name:     "first quiz with no answers",
			correct:  0,
			prior:    nil,
			expected: domain.Progress{Points: 0, Streak: 1, LastQuizDate: today},
		},
		{
			name:     "first quiz",
			correct:  7,
			prior:    nil,
			expected: domain.Progress{Points: 70, Streak: 1, LastQuizDate: today},
		},
		{
			name:     "consecutive day",
			correct:  3,
			prior:    &domain.Progress{Points: 20, Streak: 2, LastQuizDate: today.AddDays(-1)},
			expected: domain.Progress{Points: 50, Streak: 3, LastQuizDate: today},
		},
		{
			name:     "same day keeps streak",
			correct:  4,
			prior:    &domain.Progress{Points: 100, Streak: 6, LastQuizDate: today},
			expected: domain.Progress{Points: 140, Streak: 6, LastQuizDate: today},
		},
		{
			name:     "same day with empty streak",
			correct:  1,
			prior:    &domain.Progress{Points: 10, Streak: 0, LastQuizDate: today},
			expected: domain.Progress{Points: 20, Streak: 1, LastQuizDate: today},
		},
		{
			name:     "gap resets",
			correct:  2,
			prior:    &domain.Progress{Points: 300, Streak: 5, LastQuizDate: today.AddDays(-3)},
			expected: domain.Progress{Points: 320, Streak: 1, LastQuizDate: today},
		},
		{
			name:     "missing last date resets",
			correct:  1,
			prior:    &domain.Progress{Points: 30, Streak: 4},
			expected: domain.Progress{Points: 40, Streak: 1, LastQuizDate: today},
		},
		{
			name:     "date in the future resets",
			correct:  0,
			prior:    &domain.Progress{Points: 30, Streak: 4, LastQuizDate: today.AddDays(1)},
			expected: domain.Progress{Points: 30, Streak: 1, LastQuizDate: today},
		},
		{
			name:     "negative count earns nothing",
			correct:  -2,
			prior:    &domain.Progress{Points: 30, Streak: 1, LastQuizDate: today},
			expected: domain.Progress{Points: 30, Streak: 1, LastQuizDate: today},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Finish(tt.correct, tt.prior, today))
		})
	}
}

func TestFinish_RepeatSameDay(t *testing.T) {
	progress := Finish(2, &domain.Progress{Points: 0, Streak: 3, LastQuizDate: today.AddDays(-1)}, today)
	assert.Equal(t, 4, progress.Streak)

	for i := 0; i < 5; i++ {
		progress = Finish(1, &progress, today)
		assert.Equal(t, 4, progress.Streak)
	}
	assert.Equal(t, 20+5*10, progress.Points)
}

func TestFinish_DailyRun(t *testing.T) {
	var prior *domain.Progress
	for day := 0; day < 5; day++ {
		next := Finish(1, prior, today.AddDays(day))
		assert.Equal(t, day+1, next.Streak)
		prior = &next
	}
	assert.Equal(t, 50, prior.Points)
}

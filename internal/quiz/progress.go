package quiz

import "lifemin/internal/domain"

// PointsPerCorrect is awarded for every correct answer in a session
const PointsPerCorrect = 10

// Earned returns the points a session with correct answers is worth
func Earned(correct int) int {
	if correct < 0 {
		return 0
	}
	return correct * PointsPerCorrect
}

// Finish folds a finished session into the prior progress record.
// A nil prior means the user has never finished a quiz.
func Finish(correct int, prior *domain.Progress, today domain.Date) domain.Progress {
	next := domain.Progress{
		Points:       Earned(correct),
		Streak:       NextStreak(prior, today),
		LastQuizDate: today,
	}
	if prior != nil {
		next.Points += prior.Points
	}
	return next
}

// NextStreak computes the streak after a quiz finished on today.
// The streak moves at most once per calendar day.
func NextStreak(prior *domain.Progress, today domain.Date) int {
	if prior == nil {
		return 1
	}

	switch prior.LastQuizDate {
	case today:
		if prior.Streak < 1 {
			return 1
		}
		return prior.Streak
	case today.AddDays(-1):
		return prior.Streak + 1
	default:
		return 1
	}
}

package domain

import "time"

// Question is one multiple-choice item of a quiz session
type Question struct {
	FlashcardID string
	Prompt      string
	Answer      string
	Options     []string
}

// IsCorrect reports whether the option at index i is the right answer
func (q Question) IsCorrect(i int) bool {
	return i >= 0 && i < len(q.Options) && q.Options[i] == q.Answer
}

// Session is an ordered set of questions for one quiz run
type Session struct {
	Questions []Question
}

// Progress is the per-user points and streak record
type Progress struct {
	Points       int
	Streak       int
	LastQuizDate Date
	UpdatedAt    time.Time
}

// Summary aggregates a user's learning statistics
type Summary struct {
	Points          int
	Streak          int
	LastQuizDate    Date
	FlashcardCount  int
	CorrectAttempts int
	WrongAttempts   int
}

// Accuracy returns the share of correct attempts in [0,1]
func (s Summary) Accuracy() float64 {
	total := s.CorrectAttempts + s.WrongAttempts
	if total == 0 {
		return 0
	}
	return float64(s.CorrectAttempts) / float64(total)
}

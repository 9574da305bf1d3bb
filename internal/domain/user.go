package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	Name       string
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateWaitingTerm       UserState = "waiting_term"
	StateWaitingDefinition UserState = "waiting_definition"
	StateWaitingTask       UserState = "waiting_task"
	StateWaitingCategory   UserState = "waiting_category"
	StateWaitingMotivation UserState = "waiting_motivation"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State          UserState
	CurrentTerm    string
	ActiveCategory string
	PracticeCard   *Flashcard
	MessageID      int // For editing messages
}

// QuizRun is a quiz session being answered by a user
type QuizRun struct {
	Session    Session
	Current    int
	Correct    int
	LastActive time.Time
}

// Question returns the question awaiting an answer, or nil when the run is over
func (r *QuizRun) Question() *Question {
	if r.Current < 0 || r.Current >= len(r.Session.Questions) {
		return nil
	}
	return &r.Session.Questions[r.Current]
}

// Answer scores option i of the current question and advances the run
func (r *QuizRun) Answer(i int, now time.Time) (correct, done bool) {
	q := r.Question()
	if q == nil {
		return false, true
	}
	correct = q.IsCorrect(i)
	if correct {
		r.Correct++
	}
	r.Current++
	r.LastActive = now
	return correct, r.Current >= len(r.Session.Questions)
}

package domain

import "time"

// Flashcard is a term/definition pair owned by a user
type Flashcard struct {
	ID              string
	UserID          int64
	CategoryID      string
	Term            string
	Definition      string
	AIGenerated     bool
	CorrectAttempts int
	WrongAttempts   int
	CreatedAt       time.Time
}

// Category groups flashcards into a deck
type Category struct {
	ID        string
	UserID    int64
	Name      string
	Icon      string
	Color     string
	CreatedAt time.Time
}

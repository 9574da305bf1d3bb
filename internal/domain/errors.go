package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData means the deck is too small to build a quiz
	ErrInsufficientData = errors.New("at least 4 flashcards are required to build a quiz")
	// ErrAuthRequired means the operation was called without a user identity
	ErrAuthRequired = errors.New("authenticated user required")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrPersistence marks best-effort store failures; callers should warn, not abort
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError wraps a store failure during a best-effort write
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) hold for any PersistenceError
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

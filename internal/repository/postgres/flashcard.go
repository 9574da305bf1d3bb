package postgres

import (
	"context"
	"database/sql"
	"errors"

	"lifemin/internal/domain"
)

const flashcardColumns = `id, user_id, category_id, term, definition, ai_generated, correct_attempts, wrong_attempts, created_at`

// FlashcardRepo implements repository.FlashcardRepository
type FlashcardRepo struct {
	db *sql.DB
}

// NewFlashcardRepo creates a new flashcard repository
func NewFlashcardRepo(db *sql.DB) *FlashcardRepo {
	return &FlashcardRepo{db: db}
}

// CreateFlashcard stores a new card and fills in its creation time
func (r *FlashcardRepo) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	query := `
		INSERT INTO flashcards (id, user_id, category_id, term, definition, ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		card.ID, card.UserID, nullString(card.CategoryID), card.Term, card.Definition, card.AIGenerated,
	).Scan(&card.CreatedAt)
}

// ListFlashcards returns all user's cards, newest first
func (r *FlashcardRepo) ListFlashcards(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryFlashcards(ctx, query, userID)
}

// ListFlashcardsByCategory returns the cards of one deck, oldest first
func (r *FlashcardRepo) ListFlashcardsByCategory(ctx context.Context, userID int64, categoryID string) ([]domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1 AND category_id = $2
		ORDER BY created_at ASC
	`
	return r.queryFlashcards(ctx, query, userID, categoryID)
}

// GetRandomFlashcard returns a random card for the user, nil if none
func (r *FlashcardRepo) GetRandomFlashcard(ctx context.Context, userID int64) (*domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1
		ORDER BY RANDOM()
		LIMIT 1
	`
	card, err := scanFlashcard(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// IncrementAttempt bumps one attempt counter in place
func (r *FlashcardRepo) IncrementAttempt(ctx context.Context, userID int64, cardID string, correct bool) error {
	query := `
		UPDATE flashcards
		SET wrong_attempts = wrong_attempts + 1
		WHERE id = $1 AND user_id = $2
	`
	if correct {
		query = `
		UPDATE flashcards
		SET correct_attempts = correct_attempts + 1
		WHERE id = $1 AND user_id = $2
	`
	}
	res, err := r.db.ExecContext(ctx, query, cardID, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// DeleteFlashcard removes a card owned by the user
func (r *FlashcardRepo) DeleteFlashcard(ctx context.Context, userID int64, cardID string) error {
	query := `DELETE FROM flashcards WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, cardID, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// GetAttemptTotals returns the card count and summed attempt counters
func (r *FlashcardRepo) GetAttemptTotals(ctx context.Context, userID int64) (cards, correct, wrong int, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(correct_attempts), 0), COALESCE(SUM(wrong_attempts), 0)
		FROM flashcards
		WHERE user_id = $1
	`
	err = r.db.QueryRowContext(ctx, query, userID).Scan(&cards, &correct, &wrong)
	return cards, correct, wrong, err
}

func (r *FlashcardRepo) queryFlashcards(ctx context.Context, query string, args ...any) ([]domain.Flashcard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}

	return cards, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(s scanner) (*domain.Flashcard, error) {
	var (
		c          domain.Flashcard
		categoryID sql.NullString
	)
	err := s.Scan(&c.ID, &c.UserID, &categoryID, &c.Term, &c.Definition,
		&c.AIGenerated, &c.CorrectAttempts, &c.WrongAttempts, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.CategoryID = categoryID.String
	return &c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// expectAffected maps an update or delete that matched no rows to ErrNotFound
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

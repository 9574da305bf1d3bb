package postgres

import (
	"context"
	"database/sql"
	"errors"

	"lifemin/internal/domain"
)

// ProgressRepo implements repository.ProgressRepository on the users table
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// GetProgress returns the user's progress, nil if no quiz was ever finished
func (r *ProgressRepo) GetProgress(ctx context.Context, userID int64) (*domain.Progress, error) {
	query := `
		SELECT points, streak, last_quiz_date, progress_updated_at
		FROM users
		WHERE user_id = $1
	`
	var (
		p         domain.Progress
		lastQuiz  sql.NullTime
		updatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.Points, &p.Streak, &lastQuiz, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// A user row without a quiz date has no progress record yet
	if !lastQuiz.Valid {
		return nil, nil
	}

	p.LastQuizDate = domain.DateOf(lastQuiz.Time, nil)
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

// MergeProgress upserts progress columns only; points are added, not replaced
func (r *ProgressRepo) MergeProgress(ctx context.Context, userID int64, earned int, p domain.Progress) error {
	query := `
		INSERT INTO users (user_id, authorized, points, streak, last_quiz_date, progress_updated_at)
		VALUES ($1, FALSE, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			points = users.points + EXCLUDED.points,
			streak = EXCLUDED.streak,
			last_quiz_date = EXCLUDED.last_quiz_date,
			progress_updated_at = EXCLUDED.progress_updated_at
	`
	_, err := r.db.ExecContext(ctx, query, userID, earned, p.Streak, p.LastQuizDate.String(), p.UpdatedAt)
	return err
}

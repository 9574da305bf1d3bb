package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lifemin/internal/domain"
)

// TaskRepo implements repository.TaskRepository
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo creates a new task repository
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// CreateTask stores a task and fills in its ID and creation time
func (r *TaskRepo) CreateTask(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, category, task_date, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Category, task.Date.String(), task.Completed,
	).Scan(&task.ID, &task.CreatedAt)
}

// ListTasks returns all user's tasks, latest date first
func (r *TaskRepo) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	query := `
		SELECT id, user_id, title, category, task_date, completed, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY task_date DESC, created_at DESC
	`
	return r.queryTasks(ctx, query, userID)
}

// ListTasksByDate returns tasks of one day, optionally only the open ones
func (r *TaskRepo) ListTasksByDate(ctx context.Context, userID int64, date domain.Date, openOnly bool) ([]domain.Task, error) {
	query := `
		SELECT id, user_id, title, category, task_date, completed, created_at
		FROM tasks
		WHERE user_id = $1
			AND task_date = $2
			AND (NOT $3 OR completed = FALSE)
		ORDER BY created_at ASC
	`
	return r.queryTasks(ctx, query, userID, date.String(), openOnly)
}

// ToggleTask flips the completed flag and returns the new value
func (r *TaskRepo) ToggleTask(ctx context.Context, userID, taskID int64) (bool, error) {
	query := `
		UPDATE tasks
		SET completed = NOT completed
		WHERE id = $1 AND user_id = $2
		RETURNING completed
	`
	var completed bool
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	return completed, err
}

// DeleteTask removes a task owned by the user
func (r *TaskRepo) DeleteTask(ctx context.Context, userID, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// GetDaysWithTasks returns days that have tasks with counts
func (r *TaskRepo) GetDaysWithTasks(ctx context.Context, userID int64, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT task_date, COUNT(*) AS count
		FROM tasks
		WHERE user_id = $1
		GROUP BY task_date
		ORDER BY task_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.TaskCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalDaysCount returns total number of days with tasks
func (r *TaskRepo) GetTotalDaysCount(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(DISTINCT task_date) FROM tasks WHERE user_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var (
			t    domain.Task
			date time.Time
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Category, &date, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Date = domain.DateOf(date, nil)
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

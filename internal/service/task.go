package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lifemin/internal/domain"
	"lifemin/internal/repository"
)

// DaysPageSize is the number of days shown per page
const DaysPageSize = 7

// TaskService handles dated to-do items
type TaskService struct {
	taskRepo repository.TaskRepository
	location *time.Location
	now      func() time.Time
}

// NewTaskService creates a new task service. "Today" is computed in loc.
func NewTaskService(taskRepo repository.TaskRepository, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskService{
		taskRepo: taskRepo,
		location: loc,
		now:      time.Now,
	}
}

// Today returns the current calendar date
func (s *TaskService) Today() domain.Date {
	return domain.DateOf(s.now(), s.location)
}

// AddTask creates an open task. A zero date means today.
func (s *TaskService) AddTask(ctx context.Context, userID int64, title, category string, date domain.Date) (*domain.Task, error) {
	if userID == 0 {
		return nil, domain.ErrAuthRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title cannot be empty", domain.ErrInvalidInput)
	}
	if date.IsZero() {
		date = s.Today()
	}

	task := &domain.Task{
		UserID:   userID,
		Title:    title,
		Category: strings.TrimSpace(category),
		Date:     date,
	}
	if err := s.taskRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

// ListTasks returns all user's tasks, latest date first
func (s *TaskService) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.taskRepo.ListTasks(ctx, userID)
}

// TodayTasks returns today's open tasks
func (s *TaskService) TodayTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.taskRepo.ListTasksByDate(ctx, userID, s.Today(), true)
}

// ToggleTask flips completion and returns the new state
func (s *TaskService) ToggleTask(ctx context.Context, userID, taskID int64) (bool, error) {
	if userID == 0 {
		return false, domain.ErrAuthRequired
	}
	return s.taskRepo.ToggleTask(ctx, userID, taskID)
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if userID == 0 {
		return domain.ErrAuthRequired
	}
	return s.taskRepo.DeleteTask(ctx, userID, taskID)
}

// DaysList returns paginated list of days with task counts
func (s *TaskService) DaysList(ctx context.Context, userID int64, page int) ([]domain.Day, int, error) {
	if userID == 0 {
		return nil, 1, nil
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * DaysPageSize
	days, err := s.taskRepo.GetDaysWithTasks(ctx, userID, DaysPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	totalDays, err := s.taskRepo.GetTotalDaysCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (totalDays + DaysPageSize - 1) / DaysPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return days, totalPages, nil
}

// TasksByDate returns all tasks of a day given as YYYYMMDD
func (s *TaskService) TasksByDate(ctx context.Context, userID int64, dateStr string) ([]domain.Task, error) {
	parsed, err := time.Parse("20060102", dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format: %v", domain.ErrInvalidInput, err)
	}
	if userID == 0 {
		return nil, nil
	}

	return s.taskRepo.ListTasksByDate(ctx, userID, domain.DateOf(parsed, nil), false)
}

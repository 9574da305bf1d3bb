package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lifemin/internal/domain"
	"lifemin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTaskService(repo *testutil.MockTaskRepository, now time.Time) *TaskService {
	svc := NewTaskService(repo, nil)
	svc.now = testutil.FixedClock(now)
	return svc
}

func TestTaskService_AddTask(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        int64
		title         string
		date          domain.Date
		expectedDate  domain.Date
		expectedError error
	}{
		{
			name:         "defaults to today",
			userID:       123,
			title:        "buy milk",
			expectedDate: domain.NewDate(2026, 10, 14),
		},
		{
			name:         "explicit date",
			userID:       123,
			title:        "dentist",
			date:         domain.NewDate(2026, 10, 20),
			expectedDate: domain.NewDate(2026, 10, 20),
		},
		{
			name:          "empty title",
			userID:        123,
			title:         "  ",
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "no user",
			userID:        0,
			title:         "buy milk",
			expectedError: domain.ErrAuthRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockTaskRepository)
			if tt.expectedError == nil {
				repo.On("CreateTask", mock.MatchedBy(func(task *domain.Task) bool {
					return task.Title == tt.title && task.Date == tt.expectedDate && !task.Completed
				})).Return(nil)
			}

			svc := newTestTaskService(repo, now)

			task, err := svc.AddTask(context.Background(), tt.userID, tt.title, "", tt.date)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedDate, task.Date)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestTaskService_TodayTasks(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	today := domain.NewDate(2026, 10, 14)
	tasks := []domain.Task{testutil.NewTestTask(1, 123, "buy milk", today)}

	repo := new(testutil.MockTaskRepository)
	repo.On("ListTasksByDate", int64(123), today, true).Return(tasks, nil)

	svc := newTestTaskService(repo, now)

	got, err := svc.TodayTasks(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, tasks, got)

	got, err = svc.TodayTasks(context.Background(), 0)
	assert.NoError(t, err)
	assert.Empty(t, got)

	repo.AssertExpectations(t)
}

func TestTaskService_ToggleAndDelete(t *testing.T) {
	repo := new(testutil.MockTaskRepository)
	repo.On("ToggleTask", int64(123), int64(5)).Return(true, nil)
	repo.On("ToggleTask", int64(123), int64(9)).Return(false, domain.ErrNotFound)
	repo.On("DeleteTask", int64(123), int64(5)).Return(nil)

	svc := newTestTaskService(repo, time.Now())
	ctx := context.Background()

	completed, err := svc.ToggleTask(ctx, 123, 5)
	assert.NoError(t, err)
	assert.True(t, completed)

	_, err = svc.ToggleTask(ctx, 123, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, svc.DeleteTask(ctx, 123, 5))
	assert.ErrorIs(t, svc.DeleteTask(ctx, 0, 5), domain.ErrAuthRequired)

	_, err = svc.ToggleTask(ctx, 0, 5)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	repo.AssertExpectations(t)
}

func TestTaskService_ListTasks(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask(1, 123, "read", domain.NewDate(2026, 10, 14))}

	repo := new(testutil.MockTaskRepository)
	repo.On("ListTasks", int64(123)).Return(tasks, nil)

	svc := newTestTaskService(repo, time.Now())

	got, err := svc.ListTasks(context.Background(), 123)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestTaskService_DaysList(t *testing.T) {
	tests := []struct {
		name               string
		page               int
		expectedOffset     int
		mockDays           []domain.Day
		totalDays          int
		expectedTotalPages int
	}{
		{
			name:           "first page",
			page:           1,
			expectedOffset: 0,
			mockDays: []domain.Day{
				testutil.NewTestDay(time.Now(), 3),
				testutil.NewTestDay(time.Now().AddDate(0, 0, -1), 2),
			},
			totalDays:          10,
			expectedTotalPages: 2,
		},
		{
			name:               "second page",
			page:               2,
			expectedOffset:     7,
			mockDays:           []domain.Day{testutil.NewTestDay(time.Now().AddDate(0, 0, -8), 1)},
			totalDays:          10,
			expectedTotalPages: 2,
		},
		{
			name:               "page zero becomes first",
			page:               0,
			expectedOffset:     0,
			mockDays:           []domain.Day{},
			totalDays:          0,
			expectedTotalPages: 1,
		},
		{
			name:               "exact page boundary",
			page:               1,
			expectedOffset:     0,
			mockDays:           []domain.Day{},
			totalDays:          7,
			expectedTotalPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockTaskRepository)
			repo.On("GetDaysWithTasks", int64(123), DaysPageSize, tt.expectedOffset).Return(tt.mockDays, nil)
			repo.On("GetTotalDaysCount", int64(123)).Return(tt.totalDays, nil)

			svc := newTestTaskService(repo, time.Now())

			days, totalPages, err := svc.DaysList(context.Background(), 123, tt.page)

			assert.NoError(t, err)
			assert.Equal(t, tt.mockDays, days)
			assert.Equal(t, tt.expectedTotalPages, totalPages)
			repo.AssertExpectations(t)
		})
	}
}

func TestTaskService_DaysList_Error(t *testing.T) {
	repo := new(testutil.MockTaskRepository)
	repo.On("GetDaysWithTasks", int64(123), DaysPageSize, 0).Return(nil, fmt.Errorf("db error"))

	svc := newTestTaskService(repo, time.Now())

	_, _, err := svc.DaysList(context.Background(), 123, 1)

	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestTaskService_TasksByDate(t *testing.T) {
	tests := []struct {
		name          string
		dateStr       string
		expectedDate  domain.Date
		expectedError bool
	}{
		{
			name:         "valid date",
			dateStr:      "20261014",
			expectedDate: domain.NewDate(2026, 10, 14),
		},
		{
			name:          "invalid format",
			dateStr:       "2026-10-14",
			expectedError: true,
		},
		{
			name:          "invalid date",
			dateStr:       "20261399",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockTaskRepository)
			if !tt.expectedError {
				repo.On("ListTasksByDate", int64(123), tt.expectedDate, false).Return([]domain.Task{}, nil)
			}

			svc := newTestTaskService(repo, time.Now())

			_, err := svc.TasksByDate(context.Background(), 123, tt.dateStr)

			if tt.expectedError {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

package handler

import (
	"testing"
	"time"

	"lifemin/internal/domain"
	"lifemin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseTaskInput(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedTitle    string
		expectedCategory string
		expectedDate     domain.Date
		expectedError    bool
	}{
		{name: "plain title", input: "buy milk", expectedTitle: "buy milk"},
		{name: "dated", input: "2026-10-20 dentist", expectedTitle: "dentist", expectedDate: domain.NewDate(2026, 10, 20)},
		{name: "with category", input: "run 5k #sport", expectedTitle: "run 5k", expectedCategory: "sport"},
		{name: "hashtag only word stays title", input: "#sport", expectedTitle: "#sport"},
		{name: "invalid date", input: "2026-13-40 dentist", expectedError: true},
		{name: "extra spaces", input: "  call   mom  ", expectedTitle: "call mom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, category, date, err := parseTaskInput(tt.input)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedCategory, category)
			assert.Equal(t, tt.expectedDate, date)
		})
	}
}

func TestCommandPayload(t *testing.T) {
	assert.Equal(t, "buy milk", commandPayload("/task buy milk"))
	assert.Equal(t, "", commandPayload("/task"))
	assert.Equal(t, "Verbs", commandPayload("  /newdeck   Verbs "))
	assert.Equal(t, "plain", commandPayload("plain"))
}

func TestHandleTaskToggle(t *testing.T) {
	h, m := newTestHandler()
	m.tasks.On("ToggleTask", int64(123), int64(7)).Return(true, nil)
	m.tasks.On("ListTasksByDate", int64(123), mock.Anything, true).Return([]domain.Task{}, nil)

	c := testutil.NewFakeCallback(123, "", "\ftask_t_7")
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, "🎉 No open tasks for today.", c.LastReply())
	m.tasks.AssertExpectations(t)
}

func TestHandleTaskDelete_NotFound(t *testing.T) {
	h, m := newTestHandler()
	m.tasks.On("DeleteTask", int64(123), int64(7)).Return(domain.ErrNotFound)

	c := testutil.NewFakeCallback(123, "", "task_d_7")
	require.NoError(t, h.handleCallback(c))

	require.NotEmpty(t, c.Answered)
	assert.Equal(t, "Task not found", c.Answered[0].Text)
}

func TestHandleViewDays(t *testing.T) {
	h, m := newTestHandler()
	days := []domain.Day{testutil.NewTestDay(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), 2)}
	m.tasks.On("GetDaysWithTasks", int64(123), 7, 7).Return(days, nil)
	m.tasks.On("GetTotalDaysCount", int64(123)).Return(15, nil)

	c := testutil.NewFakeCallback(123, "", "page_2")
	require.NoError(t, h.handleCallback(c))

	markup := c.LastMarkup()
	require.NotNil(t, markup)
	// day row, navigation row (back and forward), back button
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "1 Mar 2020 (2)", markup.InlineKeyboard[0][0].Text)
	assert.Len(t, markup.InlineKeyboard[1], 2)
}

func TestHandleDaySelection(t *testing.T) {
	h, m := newTestHandler()
	date := domain.NewDate(2026, 10, 14)
	tasks := []domain.Task{
		testutil.NewTestTask(1, 123, "read", date),
		{ID: 2, UserID: 123, Title: "run", Category: "sport", Date: date, Completed: true},
	}
	m.tasks.On("ListTasksByDate", int64(123), date, false).Return(tasks, nil)

	c := testutil.NewFakeCallback(123, "", "day_20261014")
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, "📝 Tasks for 2026-10-14 (2):\n\n1. ⬜ read\n2. ✅ run #sport\n", c.LastReply())
}

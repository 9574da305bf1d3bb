package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lifemin/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleTodayTasks lists today's open tasks with toggle and delete buttons
func (h *Handler) handleTodayTasks(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	tasks, err := h.taskService.TodayTasks(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load today's tasks", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, msgInternalError, false)
	}

	text := "✅ Today's tasks:\n"
	if len(tasks) == 0 {
		text = "🎉 No open tasks for today."
	}

	markup := &tele.ReplyMarkup{}
	rows := taskRows(markup, tasks)
	rows = append(rows, markup.Row(btnAddTask, btnViewDays), markup.Row(btnBack))
	markup.Inline(rows...)

	return h.render(c, text, markup)
}

// handleAddTask waits for a task title
func (h *Handler) handleAddTask(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	h.SetState(userID, &domain.StateData{
		State:          domain.StateWaitingTask,
		ActiveCategory: state.ActiveCategory,
	})
	return h.render(c, "Send the task title. Start with a date (YYYY-MM-DD) to schedule it for another day.", cancelMarkup())
}

// handleTaskCommand handles "/task [YYYY-MM-DD] title"
func (h *Handler) handleTaskCommand(c tele.Context) error {
	payload := commandPayload(c.Text())
	if payload == "" {
		return h.handleAddTask(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	return h.saveTask(ctx, c, payload)
}

func (h *Handler) saveTask(ctx context.Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	title, category, date, err := parseTaskInput(text)
	if err != nil {
		return c.Send("Could not read the date, use YYYY-MM-DD.", cancelMarkup())
	}

	task, err := h.taskService.AddTask(ctx, userID, title, category, date)
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Send("The task title cannot be empty.", cancelMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to save task", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not save the task. Please try again.")
	}

	h.logger.Info("Task saved", zap.Int64("user_id", userID), zap.Int64("task_id", task.ID))
	h.ResetState(userID)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnTodayTasks, btnAddTask), markup.Row(btnMainMenu))
	return c.Send(fmt.Sprintf("📝 Added for %s: %s", task.Date, task.Title), markup)
}

// handleTaskToggle flips a task and refreshes today's list
func (h *Handler) handleTaskToggle(c tele.Context, data string) error {
	return h.changeTask(c, "task_t_", data, func(ctx context.Context, userID, taskID int64) error {
		_, err := h.taskService.ToggleTask(ctx, userID, taskID)
		return err
	})
}

// handleTaskDelete removes a task and refreshes today's list
func (h *Handler) handleTaskDelete(c tele.Context, data string) error {
	return h.changeTask(c, "task_d_", data, h.taskService.DeleteTask)
}

func (h *Handler) changeTask(c tele.Context, prefix, data string, change func(ctx context.Context, userID, taskID int64) error) error {
	userID := c.Sender().ID

	taskID, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown task"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := change(ctx, userID, taskID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Task not found"})
		}
		h.logger.Error("Failed to update task", zap.Int64("user_id", userID), zap.Int64("task_id", taskID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not update the task"})
	}

	return h.handleTodayTasks(c)
}

// handleViewDays shows list of days with tasks
func (h *Handler) handleViewDays(c tele.Context) error {
	return h.showDaysPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	page, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(data), "page_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showDaysPage(c, page)
}

func (h *Handler) showDaysPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	days, totalPages, err := h.taskService.DaysList(ctx, userID, page)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "Failed to load data", false)
	}

	if len(days) == 0 {
		return notify(c, "You have no tasks yet", true)
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, day := range days {
		btnText := fmt.Sprintf("%s (%d)", day.DisplayString(), day.TaskCount)
		rows = append(rows, markup.Row(markup.Data(btnText, "day_"+day.DateString())))
	}

	// Add pagination buttons if needed
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}

	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.render(c, "📅 Your days:\n\n", markup)
}

// handleDaySelection shows tasks for selected day
func (h *Handler) handleDaySelection(c tele.Context, data string) error {
	userID := c.Sender().ID
	dateStr := strings.TrimPrefix(strings.TrimSpace(data), "day_")

	ctx, cancel := requestContext()
	defer cancel()

	tasks, err := h.taskService.TasksByDate(ctx, userID, dateStr)
	if err != nil {
		h.logger.Error("Failed to get tasks by date", zap.String("date", dateStr), zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load"})
	}

	if len(tasks) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "No tasks for this day"})
	}

	text := fmt.Sprintf("📝 Tasks for %s (%d):\n\n", tasks[0].Date, len(tasks))
	for i, task := range tasks {
		text += fmt.Sprintf("%d. %s %s%s\n", i+1, checkbox(task.Completed), task.Title, categorySuffix(task.Category))
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBackToDays, btnMainMenu))

	return h.render(c, text, markup)
}

func taskRows(markup *tele.ReplyMarkup, tasks []domain.Task) []tele.Row {
	rows := make([]tele.Row, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, markup.Row(
			markup.Data(checkbox(task.Completed)+" "+task.Title+categorySuffix(task.Category), fmt.Sprintf("task_t_%d", task.ID)),
			markup.Data("🗑", fmt.Sprintf("task_d_%d", task.ID)),
		))
	}
	return rows
}

func checkbox(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}

func categorySuffix(category string) string {
	if category == "" {
		return ""
	}
	return " #" + category
}

// parseTaskInput reads "[YYYY-MM-DD] title [#category]"
func parseTaskInput(text string) (title, category string, date domain.Date, err error) {
	fields := strings.Fields(text)
	if len(fields) > 0 && looksLikeDate(fields[0]) {
		if date, err = domain.ParseDate(fields[0]); err != nil {
			return "", "", domain.Date{}, err
		}
		fields = fields[1:]
	}
	if n := len(fields); n > 1 && strings.HasPrefix(fields[n-1], "#") {
		category = strings.TrimPrefix(fields[n-1], "#")
		fields = fields[:n-1]
	}
	return strings.Join(fields, " "), category, date, nil
}

func looksLikeDate(s string) bool {
	return len(s) == len(domain.DateLayout) && s[4] == '-' && s[7] == '-'
}

// commandPayload returns the text after the command word
func commandPayload(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	_, payload, _ := strings.Cut(text, " ")
	return strings.TrimSpace(payload)
}

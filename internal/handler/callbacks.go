package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	// Log the error to understand why Edit failed
	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Handle specific button callbacks by Unique first,
	// then by Data for buttons whose Unique didn't come through
	key := callback.Unique
	if key == "" {
		key = data
	}
	if handle, ok := h.staticCallbacks()[key]; ok {
		return handle(c)
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, "qa_"):
		return h.handleQuizAnswer(c, data)
	case strings.HasPrefix(data, "page_"):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, "day_"):
		return h.handleDaySelection(c, data)
	case strings.HasPrefix(data, "task_t_"):
		return h.handleTaskToggle(c, data)
	case strings.HasPrefix(data, "task_d_"):
		return h.handleTaskDelete(c, data)
	case strings.HasPrefix(data, "deckdel_"):
		return h.handleDeckDelete(c, data)
	case strings.HasPrefix(data, "deck_"):
		return h.handleDeckSelect(c, data)
	case strings.HasPrefix(data, "card_d_"):
		return h.handleCardDelete(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// staticCallbacks maps fixed button uniques to their handlers
func (h *Handler) staticCallbacks() map[string]tele.HandlerFunc {
	return map[string]tele.HandlerFunc{
		btnAddCard.Unique:      h.handleAddCard,
		btnQuiz.Unique:         h.handleQuizStart,
		btnPractice.Unique:     h.handlePractice,
		btnShowAnswer.Unique:   h.handleShowAnswer,
		btnHint.Unique:         h.handleHint,
		btnKnew.Unique:         h.handleKnew,
		btnForgot.Unique:       h.handleForgot,
		btnTodayTasks.Unique:   h.handleTodayTasks,
		btnAddTask.Unique:      h.handleAddTask,
		btnViewDays.Unique:     h.handleViewDays,
		btnBackToDays.Unique:   h.handleViewDays,
		btnDecks.Unique:        h.handleDecks,
		btnNewDeck.Unique:      h.handleNewDeck,
		btnMotivate.Unique:     h.handleMotivate,
		btnStats.Unique:        h.handleStats,
		btnAIDefinition.Unique: h.handleAIDefinition,
		btnCancel.Unique:       h.handleCancel,
		btnBack.Unique:         h.handleStart,
		btnMainMenu.Unique:     h.handleStart,
	}
}

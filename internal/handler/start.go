package handler

import (
	"lifemin/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgPasswordPrompt = "Hi! This is lifemin. Please enter the password to continue:"
	msgWrongPassword  = "Wrong password."
)

const helpText = `lifemin keeps your flashcards, quizzes and tasks in one place.

/quiz - quiz on the active deck (or all cards)
/practice - flip a random card
/cards - list your cards
/newdeck <name> - create a deck
/decks - choose the active deck
/task [YYYY-MM-DD] <title> - add a task
/today - today's open tasks
/motivate <request> - ask for a motivating plan
/stats - points, streak and accuracy`

// handleStart handles /start command and the main menu buttons
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened main menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if !middleware.IsAuthorized(c) {
		// Request password
		h.ResetState(userID)
		return c.Send(msgPasswordPrompt)
	}

	// Show main menu
	h.ResetState(userID)
	return h.render(c, mainMenuText, mainMenuMarkup())
}

// handleHelp lists the commands
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(helpText)
}

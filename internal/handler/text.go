package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lifemin/internal/domain"
	"lifemin/internal/middleware"
	"lifemin/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore unknown commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	// If not authorized, check password
	if !middleware.IsAuthorized(c) {
		return h.handlePassword(ctx, c, text)
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingDefinition:
		return h.saveFlashcard(ctx, c, state, state.CurrentTerm, text, false)

	case domain.StateWaitingTask:
		return h.saveTask(ctx, c, text)

	case domain.StateWaitingCategory:
		return h.saveDeck(ctx, c, text)

	case domain.StateWaitingMotivation:
		h.ResetState(userID)
		return h.sendMotivation(ctx, c, text)

	default:
		// Idle or waiting for a term: the text is a new card's term
		h.SetState(userID, &domain.StateData{
			State:          domain.StateWaitingDefinition,
			CurrentTerm:    text,
			ActiveCategory: state.ActiveCategory,
		})

		markup := &tele.ReplyMarkup{}
		rows := []tele.Row{}
		if h.assistantService.Enabled() {
			rows = append(rows, markup.Row(btnAIDefinition))
		}
		rows = append(rows, markup.Row(btnCancel))
		markup.Inline(rows...)

		return c.Send(fmt.Sprintf("📝 %s\n\nNow send the definition.", text), markup)
	}
}

func (h *Handler) handlePassword(ctx context.Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	if !h.authService.CheckPassword(text) {
		return c.Send(msgWrongPassword)
	}

	if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
		h.logger.Error("Failed to authorize user", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)
	return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
}

// saveFlashcard stores term/definition in the active deck and waits for the next term
func (h *Handler) saveFlashcard(ctx context.Context, c tele.Context, state *domain.StateData, term, definition string, aiGenerated bool) error {
	userID := c.Sender().ID

	card, err := h.learningService.AddFlashcard(ctx, userID, state.ActiveCategory, term, definition, aiGenerated)
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Send("Term and definition cannot be empty. Send the definition again.", cancelMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to save flashcard", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not save the card. Please try again.")
	}

	h.logger.Info("Flashcard saved",
		zap.Int64("user_id", userID),
		zap.String("card_id", card.ID),
		zap.Bool("ai_generated", aiGenerated),
	)

	h.SetState(userID, &domain.StateData{
		State:          domain.StateWaitingTerm,
		ActiveCategory: state.ActiveCategory,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnQuiz, btnMainMenu))
	return c.Send(fmt.Sprintf("✅ Saved!\n\n%s\n%s\n\nSend the next term or go back to the menu.", card.Term, card.Definition), markup)
}

// handleAddCard starts the card input flow
func (h *Handler) handleAddCard(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	h.SetState(userID, &domain.StateData{
		State:          domain.StateWaitingTerm,
		ActiveCategory: state.ActiveCategory,
	})
	return h.render(c, "Send the term for the new card.", cancelMarkup())
}

// handleAIDefinition asks the assistant for the pending term's definition and saves the card
func (h *Handler) handleAIDefinition(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	if state.State != domain.StateWaitingDefinition || state.CurrentTerm == "" {
		return c.Respond(&tele.CallbackResponse{Text: "Send a term first"})
	}
	_ = c.Respond(&tele.CallbackResponse{Text: "Thinking..."})

	ctx, cancel := requestContext()
	defer cancel()

	definition := h.assistantService.Definition(ctx, state.CurrentTerm)
	if definition == service.FallbackDefinition {
		return c.Send(definition, cancelMarkup())
	}
	return h.saveFlashcard(ctx, c, state, state.CurrentTerm, definition, true)
}

// handleCancel cancels current operation, including a running quiz, and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	h.clearQuizRun(userID)
	h.ResetState(userID)
	return h.render(c, mainMenuText, mainMenuMarkup())
}

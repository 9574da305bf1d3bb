package handler

import (
	"context"
	"errors"
	"fmt"

	"lifemin/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var (
	btnShowAnswer = tele.Btn{
		Unique: "pr_show",
		Text:   "👀 Show answer",
	}
	btnHint = tele.Btn{
		Unique: "pr_hint",
		Text:   "💡 Hint",
	}
	btnKnew = tele.Btn{
		Unique: "pr_knew",
		Text:   "✅ I knew it",
	}
	btnForgot = tele.Btn{
		Unique: "pr_forgot",
		Text:   "❌ Forgot",
	}
)

// handlePractice shows a random card face down
func (h *Handler) handlePractice(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := requestContext()
	defer cancel()

	card, err := h.learningService.RandomFlashcard(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to get random flashcard", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, msgInternalError, false)
	}
	if card == nil {
		return notify(c, "You have no cards yet", true)
	}

	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:          domain.StateIdle,
		ActiveCategory: state.ActiveCategory,
		PracticeCard:   card,
	})

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{markup.Row(btnShowAnswer)}
	if h.assistantService.Enabled() {
		rows = append(rows, markup.Row(btnHint))
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.render(c, fmt.Sprintf("🎲 %s", card.Term), markup)
}

// handleShowAnswer reveals the definition and asks for self-assessment
func (h *Handler) handleShowAnswer(c tele.Context) error {
	card := h.GetState(c.Sender().ID).PracticeCard
	if card == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Pick a card first"})
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnKnew, btnForgot),
		markup.Row(btnBack),
	)
	return h.render(c, fmt.Sprintf("🎲 %s\n\n🔄 %s", card.Term, card.Definition), markup)
}

// handleHint asks the assistant for a clue about the current card
func (h *Handler) handleHint(c tele.Context) error {
	card := h.GetState(c.Sender().ID).PracticeCard
	if card == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Pick a card first"})
	}
	_ = c.Respond(&tele.CallbackResponse{Text: "Thinking..."})

	ctx, cancel := requestContext()
	defer cancel()

	hint := h.assistantService.Hint(ctx, card.Term)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnShowAnswer), markup.Row(btnBack))
	return c.Send(fmt.Sprintf("💡 %s", hint), markup)
}

// handleSelfAssessment records the attempt and deals the next card
func (h *Handler) handleSelfAssessment(c tele.Context, correct bool) error {
	userID := c.Sender().ID

	card := h.takePracticeCard(userID)
	if card == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Pick a card first"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	h.recordAttempt(ctx, userID, card.ID, correct)

	return h.handlePractice(c)
}

// takePracticeCard removes the shown card from the state so it is assessed once
func (h *Handler) takePracticeCard(userID int64) *domain.Flashcard {
	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state := h.GetState(userID)
	if state.PracticeCard == nil {
		return nil
	}
	h.SetState(userID, &domain.StateData{
		State:          state.State,
		CurrentTerm:    state.CurrentTerm,
		ActiveCategory: state.ActiveCategory,
	})
	return state.PracticeCard
}

// recordAttempt bumps the card's counters; the flow goes on when it fails
func (h *Handler) recordAttempt(ctx context.Context, userID int64, cardID string, correct bool) {
	err := h.learningService.RecordAttempt(ctx, userID, cardID, correct)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		h.logger.Error("Failed to record attempt", zap.Int64("user_id", userID), zap.String("card_id", cardID), zap.Error(err))
	}
}

func (h *Handler) handleKnew(c tele.Context) error {
	return h.handleSelfAssessment(c, true)
}

func (h *Handler) handleForgot(c tele.Context) error {
	return h.handleSelfAssessment(c, false)
}

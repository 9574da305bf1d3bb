package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lifemin/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	defaultDeckIcon = "🗂"
	maxListedCards  = 20
)

var btnNewDeck = tele.Btn{
	Unique: "new_deck",
	Text:   "➕ New deck",
}

// handleDecks lists decks; pressing one makes it the active deck
func (h *Handler) handleDecks(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	decks, err := h.learningService.ListCategories(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list decks", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, msgInternalError, false)
	}

	active := h.GetState(userID).ActiveCategory

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{markup.Row(markup.Data(activeMark(active == "")+"All cards", "deck_all"))}
	for _, deck := range decks {
		rows = append(rows, markup.Row(
			markup.Data(activeMark(active == deck.ID)+deck.Icon+" "+deck.Name, "deck_"+deck.ID),
			markup.Data("🗑", "deckdel_"+deck.ID),
		))
	}
	rows = append(rows, markup.Row(btnNewDeck), markup.Row(btnBack))
	markup.Inline(rows...)

	return h.render(c, "🗂 Choose the deck for new cards and quizzes:", markup)
}

// handleDeckSelect sets the active deck
func (h *Handler) handleDeckSelect(c tele.Context, data string) error {
	userID := c.Sender().ID
	deckID := strings.TrimPrefix(data, "deck_")
	if deckID == "all" {
		deckID = ""
	}

	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:          state.State,
		CurrentTerm:    state.CurrentTerm,
		ActiveCategory: deckID,
		PracticeCard:   state.PracticeCard,
	})

	return h.handleDecks(c)
}

// handleDeckDelete removes a deck; its cards stay in the collection
func (h *Handler) handleDeckDelete(c tele.Context, data string) error {
	userID := c.Sender().ID
	deckID := strings.TrimPrefix(data, "deckdel_")

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.learningService.DeleteCategory(ctx, userID, deckID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.logger.Error("Failed to delete deck", zap.Int64("user_id", userID), zap.String("deck_id", deckID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not delete the deck"})
	}

	if h.GetState(userID).ActiveCategory == deckID {
		h.SetState(userID, &domain.StateData{State: domain.StateIdle})
	}
	return h.handleDecks(c)
}

// handleNewDeck waits for a deck name
func (h *Handler) handleNewDeck(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	h.SetState(userID, &domain.StateData{
		State:          domain.StateWaitingCategory,
		ActiveCategory: state.ActiveCategory,
	})
	return h.render(c, "Send the name of the new deck.", cancelMarkup())
}

// handleNewDeckCommand handles "/newdeck name"
func (h *Handler) handleNewDeckCommand(c tele.Context) error {
	name := commandPayload(c.Text())
	if name == "" {
		return h.handleNewDeck(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	return h.saveDeck(ctx, c, name)
}

// saveDeck creates a deck and makes it active
func (h *Handler) saveDeck(ctx context.Context, c tele.Context, name string) error {
	userID := c.Sender().ID

	deck, err := h.learningService.AddCategory(ctx, userID, name, defaultDeckIcon, "")
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Send("The deck name cannot be empty.", cancelMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to save deck", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not save the deck. Please try again.")
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, ActiveCategory: deck.ID})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnAddCard, btnDecks), markup.Row(btnMainMenu))
	return c.Send(fmt.Sprintf("%s Deck %q created and selected.", deck.Icon, deck.Name), markup)
}

// handleCards lists cards of the active deck with delete buttons
func (h *Handler) handleCards(c tele.Context) error {
	userID := c.Sender().ID
	deckID := h.GetState(userID).ActiveCategory

	ctx, cancel := requestContext()
	defer cancel()

	var (
		cards []domain.Flashcard
		err   error
	)
	if deckID != "" {
		cards, err = h.learningService.ListByCategory(ctx, userID, deckID)
	} else {
		cards, err = h.learningService.ListFlashcards(ctx, userID)
	}
	if err != nil {
		h.logger.Error("Failed to list cards", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, msgInternalError, false)
	}

	if len(cards) == 0 {
		return notify(c, "No cards here yet. Send a term to add one.", false)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🃏 Cards (%d):\n\n", len(cards))
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for i, card := range cards {
		if i >= maxListedCards {
			fmt.Fprintf(&b, "\n…and %d more", len(cards)-maxListedCards)
			break
		}
		fmt.Fprintf(&b, "%d. %s - %s (✅%d ❌%d)\n", i+1, card.Term, card.Definition, card.CorrectAttempts, card.WrongAttempts)
		rows = append(rows, markup.Row(markup.Data(fmt.Sprintf("🗑 %d. %s", i+1, card.Term), "card_d_"+card.ID)))
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.render(c, b.String(), markup)
}

// handleCardDelete removes a card and refreshes the list
func (h *Handler) handleCardDelete(c tele.Context, data string) error {
	userID := c.Sender().ID
	cardID := strings.TrimPrefix(data, "card_d_")

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.learningService.DeleteFlashcard(ctx, userID, cardID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Card not found"})
		}
		h.logger.Error("Failed to delete card", zap.Int64("user_id", userID), zap.String("card_id", cardID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not delete the card"})
	}

	return h.handleCards(c)
}

func activeMark(active bool) string {
	if active {
		return "● "
	}
	return ""
}

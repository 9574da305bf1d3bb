package handler

import (
	"context"

	"lifemin/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleMotivate waits for a planning request
func (h *Handler) handleMotivate(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	h.SetState(userID, &domain.StateData{
		State:          domain.StateWaitingMotivation,
		ActiveCategory: state.ActiveCategory,
	})
	return h.render(c, "✨ What would you like to plan or get motivated for?", cancelMarkup())
}

// handleMotivateCommand handles "/motivate request"
func (h *Handler) handleMotivateCommand(c tele.Context) error {
	request := commandPayload(c.Text())
	if request == "" {
		return h.handleMotivate(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	return h.sendMotivation(ctx, c, request)
}

func (h *Handler) sendMotivation(ctx context.Context, c tele.Context, request string) error {
	reply := h.assistantService.Motivation(ctx, request)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMotivate, btnMainMenu))
	return c.Send("✨ "+reply, markup)
}

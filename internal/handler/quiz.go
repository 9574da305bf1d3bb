package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lifemin/internal/domain"
	"lifemin/internal/quiz"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuizStart builds a new session from the active deck and shows the first question
func (h *Handler) handleQuizStart(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := requestContext()
	defer cancel()

	state := h.GetState(userID)
	session, err := h.quizService.Start(ctx, userID, state.ActiveCategory)
	if errors.Is(err, domain.ErrInsufficientData) {
		return notify(c, fmt.Sprintf("Add at least %d cards to start a quiz.", quiz.MinFlashcards), true)
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, msgInternalError, false)
	}

	run := &domain.QuizRun{Session: session, LastActive: h.now()}
	h.setQuizRun(userID, run)

	h.logger.Info("Quiz started",
		zap.Int64("user_id", userID),
		zap.Int("questions", len(session.Questions)),
		zap.String("deck", state.ActiveCategory),
	)

	return h.render(c, questionText(run, ""), questionMarkup(run))
}

// handleQuizAnswer scores a pressed option and moves to the next question
func (h *Handler) handleQuizAnswer(c tele.Context, data string) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	question, option, err := parseQuizAnswer(data)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
	}

	q, run, correct, ok := h.answerQuiz(userID, question, option)
	if !ok {
		// Stale button from an earlier question or an expired session
		return c.Respond(&tele.CallbackResponse{Text: "This question is no longer active"})
	}

	ctx, cancel := requestContext()
	h.recordAttempt(ctx, userID, q.FlashcardID, correct)
	cancel()

	feedback := "✅ Correct!"
	if !correct {
		feedback = fmt.Sprintf("❌ The answer was: %s", q.Answer)
	}

	if run.Question() != nil {
		return h.render(c, questionText(&run, feedback), questionMarkup(&run))
	}
	return h.finishQuiz(c, &run, feedback)
}

// answerQuiz applies an answer to the running quiz if question is the active one.
// It returns the answered question and a snapshot of the run; finished runs are removed.
func (h *Handler) answerQuiz(userID int64, question, option int) (domain.Question, domain.QuizRun, bool, bool) {
	h.runMux.Lock()
	defer h.runMux.Unlock()

	run, exists := h.runs[userID]
	if !exists || run.Current != question || run.Question() == nil {
		return domain.Question{}, domain.QuizRun{}, false, false
	}

	q := *run.Question()
	correct, done := run.Answer(option, h.now())
	if done {
		delete(h.runs, userID)
	}
	return q, *run, correct, true
}

func (h *Handler) finishQuiz(c tele.Context, run *domain.QuizRun, feedback string) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	total := len(run.Session.Questions)
	progress, err := h.quizService.Finish(ctx, userID, run.Correct)

	var note string
	switch {
	case errors.Is(err, domain.ErrPersistence):
		h.logger.Warn("Quiz result not saved", zap.Int64("user_id", userID), zap.Error(err))
		note = "\n\n⚠️ Your result could not be saved this time."
	case err != nil:
		h.logger.Error("Failed to finish quiz", zap.Int64("user_id", userID), zap.Error(err))
		return h.render(c, msgInternalError, mainMenuMarkup())
	}

	text := fmt.Sprintf("%s\n\n🏁 Quiz finished: %d/%d correct, +%d points.",
		feedback, run.Correct, total, quiz.Earned(run.Correct))
	if progress != nil {
		text += fmt.Sprintf("\n🏆 Total points: %d\n🔥 Streak: %d %s",
			progress.Points, progress.Streak, plural(progress.Streak, "day", "days"))
	}
	text += note

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnQuiz, btnMainMenu))
	return h.render(c, text, markup)
}

// handleStats shows points, streak and attempt accuracy
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	summary, err := h.statsService.Summary(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load stats", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, msgInternalError, false)
	}

	last := "never"
	if !summary.LastQuizDate.IsZero() {
		last = summary.LastQuizDate.String()
	}

	text := fmt.Sprintf(
		"🏆 Points: %d\n🔥 Streak: %d %s\n🗓 Last quiz: %s\n\n🃏 Cards: %d\n🎯 Accuracy: %.0f%% (%d/%d)",
		summary.Points, summary.Streak, plural(summary.Streak, "day", "days"), last,
		summary.FlashcardCount, summary.Accuracy()*100,
		summary.CorrectAttempts, summary.CorrectAttempts+summary.WrongAttempts,
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBack))
	return h.render(c, text, markup)
}

func questionText(run *domain.QuizRun, feedback string) string {
	q := run.Question()

	var b strings.Builder
	if feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "🧠 Question %d/%d\n\n%s\n", run.Current+1, len(run.Session.Questions), q.Prompt)
	for i, option := range q.Options {
		fmt.Fprintf(&b, "\n%s) %s", optionLabel(i), option)
	}
	return b.String()
}

func questionMarkup(run *domain.QuizRun) *tele.ReplyMarkup {
	q := run.Question()

	markup := &tele.ReplyMarkup{}
	row := tele.Row{}
	for i := range q.Options {
		row = append(row, markup.Data(optionLabel(i), quizAnswerData(run.Current, i)))
	}
	markup.Inline(row, markup.Row(btnCancel))
	return markup
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}

func quizAnswerData(question, option int) string {
	return fmt.Sprintf("qa_%d_%d", question, option)
}

// parseQuizAnswer reads "qa_<question>_<option>"
func parseQuizAnswer(data string) (question, option int, err error) {
	parts := strings.Split(strings.TrimPrefix(data, "qa_"), "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid quiz answer %q", data)
	}
	if question, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid question index: %w", err)
	}
	if option, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid option index: %w", err)
	}
	if question < 0 || option < 0 {
		return 0, 0, fmt.Errorf("negative index in %q", data)
	}
	return question, option, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

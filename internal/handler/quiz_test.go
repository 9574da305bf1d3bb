package handler

import (
	"fmt"
	"testing"

	"lifemin/internal/domain"
	"lifemin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func correctOption(q *domain.Question) int {
	for i, option := range q.Options {
		if option == q.Answer {
			return i
		}
	}
	return -1
}

func TestQuizFlow_AllCorrect(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 4), nil)
	m.progress.On("GetProgress", int64(123)).Return(nil, nil)
	m.progress.On("MergeProgress", int64(123), 40, mock.Anything).Return(nil)
	m.cards.On("IncrementAttempt", int64(123), mock.Anything, true).Return(nil)

	start := testutil.NewFakeCallback(123, "quiz", "")
	require.NoError(t, h.handleQuizStart(start))
	assert.Contains(t, start.LastReply(), "Question 1/4")

	var last *testutil.FakeContext
	for i := 0; i < 4; i++ {
		run, ok := h.QuizRun(123)
		require.True(t, ok)
		answer := correctOption(run.Question())
		require.GreaterOrEqual(t, answer, 0)

		last = testutil.NewFakeCallback(123, "", "\f"+quizAnswerData(i, answer))
		require.NoError(t, h.handleCallback(last))
	}

	assert.Contains(t, last.LastReply(), "4/4 correct, +40 points")
	assert.Contains(t, last.LastReply(), "Streak: 1 day")
	_, running := h.QuizRun(123)
	assert.False(t, running)
	m.progress.AssertExpectations(t)
	m.cards.AssertNumberOfCalls(t, "IncrementAttempt", 4)
}

func TestQuizFlow_WrongAnswerShowsSolution(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 5), nil)

	require.NoError(t, h.handleQuizStart(testutil.NewFakeCallback(123, "quiz", "")))

	run, _ := h.QuizRun(123)
	q := run.Question()
	wrong := (correctOption(q) + 1) % len(q.Options)
	m.cards.On("IncrementAttempt", int64(123), q.FlashcardID, false).Return(nil)

	c := testutil.NewFakeCallback(123, "", quizAnswerData(0, wrong))
	require.NoError(t, h.handleCallback(c))

	assert.Contains(t, c.LastReply(), "The answer was: "+q.Answer)
	assert.Contains(t, c.LastReply(), "Question 2/5")

	run, _ = h.QuizRun(123)
	assert.Equal(t, 0, run.Correct)
	assert.Equal(t, 1, run.Current)
	m.cards.AssertExpectations(t)
}

func TestQuizFlow_AttemptNotRecorded(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 4), nil)
	m.cards.On("IncrementAttempt", int64(123), mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))

	require.NoError(t, h.handleQuizStart(testutil.NewFakeCallback(123, "quiz", "")))

	c := testutil.NewFakeCallback(123, "", quizAnswerData(0, 0))
	require.NoError(t, h.handleCallback(c))

	assert.Contains(t, c.LastReply(), "Question 2/4")
	run, _ := h.QuizRun(123)
	assert.Equal(t, 1, run.Current)
}

func TestQuizFlow_StaleAnswer(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 4), nil)

	require.NoError(t, h.handleQuizStart(testutil.NewFakeCallback(123, "quiz", "")))

	c := testutil.NewFakeCallback(123, "", quizAnswerData(3, 0))
	require.NoError(t, h.handleCallback(c))

	require.NotEmpty(t, c.Answered)
	assert.Equal(t, "This question is no longer active", c.Answered[0].Text)
	run, _ := h.QuizRun(123)
	assert.Equal(t, 0, run.Current)
}

func TestQuizFlow_InsufficientCards(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 3), nil)

	c := testutil.NewFakeCallback(123, "quiz", "")
	require.NoError(t, h.handleQuizStart(c))

	require.NotEmpty(t, c.Answered)
	assert.Equal(t, "Add at least 4 cards to start a quiz.", c.Answered[0].Text)
	assert.True(t, c.Answered[0].ShowAlert)
	_, running := h.QuizRun(123)
	assert.False(t, running)
}

func TestQuizFlow_ResultNotSaved(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 4), nil)
	m.progress.On("GetProgress", int64(123)).Return(&domain.Progress{Points: 100, Streak: 2}, nil)
	m.progress.On("MergeProgress", int64(123), mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))
	m.cards.On("IncrementAttempt", int64(123), mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, h.handleQuizStart(testutil.NewFakeCallback(123, "quiz", "")))

	var last *testutil.FakeContext
	for i := 0; i < 4; i++ {
		last = testutil.NewFakeCallback(123, "", quizAnswerData(i, 0))
		require.NoError(t, h.handleCallback(last))
	}

	assert.Contains(t, last.LastReply(), "could not be saved")
	assert.Contains(t, last.LastReply(), "Total points")
}

func TestQuizFlow_CancelDiscardsRun(t *testing.T) {
	h, m := newTestHandler()
	m.cards.On("ListFlashcards", int64(123)).Return(testutil.NewTestDeck(123, 4), nil)

	require.NoError(t, h.handleQuizStart(testutil.NewFakeCallback(123, "quiz", "")))
	require.NoError(t, h.handleCallback(testutil.NewFakeCallback(123, "cancel", "")))

	_, running := h.QuizRun(123)
	assert.False(t, running)
	m.progress.AssertNotCalled(t, "MergeProgress", mock.Anything, mock.Anything, mock.Anything)
}

func TestParseQuizAnswer(t *testing.T) {
	tests := []struct {
		name             string
		data             string
		expectedQuestion int
		expectedOption   int
		expectedError    bool
	}{
		{name: "valid", data: "qa_3_1", expectedQuestion: 3, expectedOption: 1},
		{name: "round trip", data: quizAnswerData(9, 2), expectedQuestion: 9, expectedOption: 2},
		{name: "missing option", data: "qa_3", expectedError: true},
		{name: "not a number", data: "qa_x_1", expectedError: true},
		{name: "negative", data: "qa_-1_0", expectedError: true},
		{name: "extra part", data: "qa_1_2_3", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, option, err := parseQuizAnswer(tt.data)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedQuestion, question)
				assert.Equal(t, tt.expectedOption, option)
			}
		})
	}
}

func TestQuestionText(t *testing.T) {
	run := &domain.QuizRun{Session: domain.Session{Questions: []domain.Question{
		{Prompt: "cat", Answer: "meows", Options: []string{"barks", "meows", "tweets", "swims"}},
		{Prompt: "dog", Answer: "barks", Options: []string{"barks", "meows"}},
	}}}

	assert.Equal(t, "🧠 Question 1/2\n\ncat\n\nA) barks\nB) meows\nC) tweets\nD) swims", questionText(run, ""))

	run.Current = 1
	assert.Equal(t, "✅ Correct!\n\n🧠 Question 2/2\n\ndog\n\nA) barks\nB) meows", questionText(run, "✅ Correct!"))

	markup := questionMarkup(run)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 2)
}

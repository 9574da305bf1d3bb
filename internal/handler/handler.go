package handler

import (
	"context"
	"sync"
	"time"

	"lifemin/internal/domain"
	"lifemin/internal/middleware"
	"lifemin/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds the work done for a single update
const requestTimeout = 45 * time.Second

// Services bundles the business services the handler drives
type Services struct {
	Auth      *service.AuthService
	Learning  *service.LearningService
	Quiz      *service.QuizService
	Tasks     *service.TaskService
	Assistant *service.AssistantService
	Stats     *service.StatsService
}

// Handler manages all bot interactions
type Handler struct {
	bot              *tele.Bot
	authService      *service.AuthService
	learningService  *service.LearningService
	quizService      *service.QuizService
	taskService      *service.TaskService
	assistantService *service.AssistantService
	statsService     *service.StatsService
	logger           *zap.Logger
	now              func() time.Time

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Running quiz sessions, discarded when finished or abandoned
	runs   map[int64]*domain.QuizRun
	runMux sync.Mutex

	// Per-user locks so concurrent button presses are handled in order
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, services Services, logger *zap.Logger) *Handler {
	return &Handler{
		bot:              bot,
		authService:      services.Auth,
		learningService:  services.Learning,
		quizService:      services.Quiz,
		taskService:      services.Tasks,
		assistantService: services.Assistant,
		statsService:     services.Stats,
		logger:           logger,
		now:              time.Now,
		states:           make(map[int64]*domain.StateData),
		runs:             make(map[int64]*domain.QuizRun),
		callbackLocks:    make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.AuthMiddleware(h.authService, h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/quiz", h.handleQuizStart)
	h.bot.Handle("/practice", h.handlePractice)
	h.bot.Handle("/task", h.handleTaskCommand)
	h.bot.Handle("/today", h.handleTodayTasks)
	h.bot.Handle("/newdeck", h.handleNewDeckCommand)
	h.bot.Handle("/decks", h.handleDecks)
	h.bot.Handle("/cards", h.handleCards)
	h.bot.Handle("/motivate", h.handleMotivateCommand)
	h.bot.Handle("/stats", h.handleStats)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	for unique, handle := range h.staticCallbacks() {
		h.bot.Handle("\f"+unique, handle)
	}

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, keeping the active deck
func (h *Handler) ResetState(userID int64) {
	deck := h.GetState(userID).ActiveCategory
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, ActiveCategory: deck})
}

// QuizRun returns a snapshot of the user's running quiz
func (h *Handler) QuizRun(userID int64) (domain.QuizRun, bool) {
	h.runMux.Lock()
	defer h.runMux.Unlock()

	run, exists := h.runs[userID]
	if !exists {
		return domain.QuizRun{}, false
	}
	return *run, true
}

func (h *Handler) setQuizRun(userID int64, run *domain.QuizRun) {
	h.runMux.Lock()
	defer h.runMux.Unlock()
	h.runs[userID] = run
}

func (h *Handler) clearQuizRun(userID int64) {
	h.runMux.Lock()
	defer h.runMux.Unlock()
	delete(h.runs, userID)
}

// SweepQuizRuns discards quiz runs idle since before cutoff
func (h *Handler) SweepQuizRuns(cutoff time.Time) int {
	h.runMux.Lock()
	defer h.runMux.Unlock()

	removed := 0
	for userID, run := range h.runs {
		if run.LastActive.Before(cutoff) {
			delete(h.runs, userID)
			removed++
		}
	}
	return removed
}

// userLock returns the mutex serializing one user's button presses
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnAddCard = tele.Btn{
		Unique: "add_card",
		Text:   "➕ Add card",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🧠 Quiz",
	}
	btnPractice = tele.Btn{
		Unique: "practice",
		Text:   "🎲 Practice",
	}
	btnTodayTasks = tele.Btn{
		Unique: "today_tasks",
		Text:   "✅ Today",
	}
	btnAddTask = tele.Btn{
		Unique: "add_task",
		Text:   "📝 Add task",
	}
	btnViewDays = tele.Btn{
		Unique: "view_days",
		Text:   "📅 Days",
	}
	btnDecks = tele.Btn{
		Unique: "decks",
		Text:   "🗂 Decks",
	}
	btnMotivate = tele.Btn{
		Unique: "motivate",
		Text:   "✨ Motivate me",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "🏆 Stats",
	}
	btnAIDefinition = tele.Btn{
		Unique: "ai_definition",
		Text:   "🤖 Suggest definition",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
	btnBackToDays = tele.Btn{
		Unique: "back_to_days",
		Text:   "◀️ To days",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

const mainMenuText = "🏠 Main menu\n\nChoose an action:"

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnQuiz, btnPractice),
		menu.Row(btnAddCard, btnDecks),
		menu.Row(btnTodayTasks, btnAddTask),
		menu.Row(btnViewDays, btnStats),
		menu.Row(btnMotivate),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

// render edits the message behind a button press, or sends a new one for commands
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// notify answers a button press with a toast, or sends text for commands
func notify(c tele.Context, text string, alert bool) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: alert})
	}
	return c.Send(text)
}

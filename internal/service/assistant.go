package service

import (
	"context"
	"fmt"
	"strings"

	"lifemin/internal/ai"

	"go.uber.org/zap"
)

// Fallback replies used when the AI endpoint is unavailable
const (
	FallbackHint       = "No hint right now. Think about where you last saw this term."
	FallbackDefinition = "Could not fetch a definition. Please type it yourself."
	FallbackMotivation = "Connection problem, but keep going with your plans!"
)

// AssistantService asks the language model for hints, definitions and motivation
type AssistantService struct {
	generator ai.TextGenerator
	logger    *zap.Logger
}

// NewAssistantService creates a new assistant. A nil generator always falls back.
func NewAssistantService(generator ai.TextGenerator, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		generator: generator,
		logger:    logger,
	}
}

// Enabled reports whether an AI endpoint is configured
func (s *AssistantService) Enabled() bool {
	return s.generator != nil
}

// Hint returns a short clue for guessing term
func (s *AssistantService) Hint(ctx context.Context, term string) string {
	prompt := fmt.Sprintf("Give me a short hint to help me guess the term %q. Do not reveal the term itself.", term)
	return s.ask(ctx, "hint", prompt, FallbackHint)
}

// Definition returns a very short meaning of term, suitable as a flashcard back
func (s *AssistantService) Definition(ctx context.Context, term string) string {
	prompt := fmt.Sprintf("Explain the meaning of %q in one short sentence. Reply with the meaning only.", term)
	return s.ask(ctx, "definition", prompt, FallbackDefinition)
}

// Motivation answers a planning request with a short motivating reply
func (s *AssistantService) Motivation(ctx context.Context, request string) string {
	request = strings.TrimSpace(request)
	if request == "" {
		request = "Motivate me for today."
	}
	prompt := "Give a short, motivating and planning-oriented reply to this request: " + request
	return s.ask(ctx, "motivation", prompt, FallbackMotivation)
}

func (s *AssistantService) ask(ctx context.Context, kind, prompt, fallback string) string {
	if s.generator == nil {
		return fallback
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("AI request failed", zap.String("kind", kind), zap.Error(err))
		return fallback
	}
	return text
}

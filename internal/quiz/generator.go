// Package quiz builds multiple-choice quiz sessions from a flashcard deck
// and scores finished sessions into the user's points and streak.
package quiz

import (
	"math/rand"
	"sync"
	"time"

	"lifemin/internal/domain"
)

const (
	// MinFlashcards is the smallest deck a quiz can be built from
	MinFlashcards = 4
	// MaxQuestions caps the length of a session
	MaxQuestions = 10
	// Distractors is the number of wrong options per question
	Distractors = 3
)

// Generator builds quiz sessions. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a generator drawing from rnd.
// A nil rnd is replaced by a time-seeded source.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Generate picks up to MaxQuestions cards from the deck in random order and
// builds one question per card. Distractors come from the definitions of all
// other cards in the deck, not only the selected ones.
//
// A question carries fewer than Distractors+1 options when the deck lacks
// enough distinct alternative definitions; options are never duplicated.
func (g *Generator) Generate(cards []domain.Flashcard) (domain.Session, error) {
	if len(cards) < MinFlashcards {
		return domain.Session{}, domain.ErrInsufficientData
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order := g.rnd.Perm(len(cards))
	if len(order) > MaxQuestions {
		order = order[:MaxQuestions]
	}

	questions := make([]domain.Question, 0, len(order))
	for _, idx := range order {
		questions = append(questions, g.question(cards, idx))
	}

	return domain.Session{Questions: questions}, nil
}

func (g *Generator) question(cards []domain.Flashcard, idx int) domain.Question {
	card := cards[idx]

	pool := make([]string, 0, len(cards)-1)
	for i, other := range cards {
		if i != idx {
			pool = append(pool, other.Definition)
		}
	}
	g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	seen := map[string]struct{}{card.Definition: {}}
	options := make([]string, 0, Distractors+1)
	for _, def := range pool {
		if len(options) == Distractors {
			break
		}
		if _, dup := seen[def]; dup {
			continue
		}
		seen[def] = struct{}{}
		options = append(options, def)
	}

	options = append(options, card.Definition)
	g.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return domain.Question{
		FlashcardID: card.ID,
		Prompt:      card.Term,
		Answer:      card.Definition,
		Options:     options,
	}
}

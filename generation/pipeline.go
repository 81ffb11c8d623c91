// Package generation turns a topic plus optional source text into validated,
// persistence-ready flashcard sets and quizzes via an external completion
// service. Generated and imported content go through the same shape checks;
// both are untrusted input.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartcram/smartcram-api/ai"
)

// MinItems and MaxItems bound the number of cards or questions a single
// request may ask for.
const (
	MinItems = 1
	MaxItems = 50
)

// FlashcardSet is a fully validated aggregate, not yet persisted.
type FlashcardSet struct {
	Topic       string
	Description string
	Cards       []Card
}

// Quiz is a fully validated aggregate, not yet persisted.
type Quiz struct {
	Topic     string
	Title     string
	Questions []Question
}

// Generator orchestrates prompt construction, the completion call and
// validation. It holds no mutable state and is safe for concurrent use.
type Generator struct {
	Completer ai.Completer
}

// NewGenerator creates a Generator backed by the given completer.
func NewGenerator(completer ai.Completer) *Generator {
	return &Generator{Completer: completer}
}

// GenerateFlashcards produces a validated flashcard set for the topic. The
// result holds between 1 and numCards cards; failures at the completion call
// surface as UnavailableError, rejected output as MalformedError. No retries
// happen here; retry policy belongs to the caller.
func (g *Generator) GenerateFlashcards(ctx context.Context, topic, sourceText string, numCards int, description string) (*FlashcardSet, error) {
	topic = strings.TrimSpace(topic)
	if err := checkInput(topic, numCards); err != nil {
		return nil, err
	}

	prompt := buildFlashcardPrompt(topic, sourceText, numCards)
	raw, err := g.Completer.Complete(ctx, prompt)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	cards, err := ParseFlashcards(raw, numCards)
	if err != nil {
		return nil, err
	}

	return &FlashcardSet{
		Topic:       topic,
		Description: description,
		Cards:       cards,
	}, nil
}

// GenerateQuiz produces a validated quiz for the topic. The model-provided
// title is used when present; otherwise the title derives from the topic.
func (g *Generator) GenerateQuiz(ctx context.Context, topic, sourceText string, numQuestions int) (*Quiz, error) {
	topic = strings.TrimSpace(topic)
	if err := checkInput(topic, numQuestions); err != nil {
		return nil, err
	}

	prompt := buildQuizPrompt(topic, sourceText, numQuestions)
	raw, err := g.Completer.Complete(ctx, prompt)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	title, questions, err := ParseQuiz(raw, numQuestions)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("%s Quiz", topic)
	}

	return &Quiz{
		Topic:     topic,
		Title:     title,
		Questions: questions,
	}, nil
}

func checkInput(topic string, count int) error {
	if topic == "" {
		return &InvalidInputError{Reason: "topic must not be empty"}
	}
	if count < MinItems || count > MaxItems {
		return &InvalidInputError{Reason: fmt.Sprintf("item count %d outside [%d, %d]", count, MinItems, MaxItems)}
	}
	return nil
}

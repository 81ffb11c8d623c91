// Package transfer serializes stored aggregates into portable JSON
// documents and turns uploaded documents back into validated aggregates.
// Documents carry no owner or database identifiers, so they can move
// between accounts and installations.
package transfer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartcram/smartcram-api/generation"
	"github.com/smartcram/smartcram-api/models"
)

// InvalidDocumentError indicates an uploaded document does not match the
// expected transfer shape. Not retryable; the document must be fixed.
type InvalidDocumentError struct {
	Reason string
	Err    error
}

func (e *InvalidDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

func (e *InvalidDocumentError) Unwrap() error { return e.Err }

// SetDocument is the portable form of a flashcard set.
type SetDocument struct {
	Topic       string            `json:"topic"`
	Description string            `json:"description,omitempty"`
	Flashcards  []generation.Card `json:"flashcards"`
}

// QuizDocument is the portable form of a quiz.
type QuizDocument struct {
	Topic     string                `json:"topic"`
	Title     string                `json:"title"`
	Questions []generation.Question `json:"questions"`
}

// ExportSet builds the transfer document for a stored flashcard set,
// preserving child order.
func ExportSet(set *models.FlashcardSet) *SetDocument {
	cards := make([]generation.Card, len(set.Flashcards))
	for i, card := range set.Flashcards {
		cards[i] = generation.Card{
			Question: card.Question,
			Answer:   card.Answer,
		}
	}
	return &SetDocument{
		Topic:       set.Topic,
		Description: set.Description,
		Flashcards:  cards,
	}
}

// ExportQuiz builds the transfer document for a stored quiz.
func ExportQuiz(quiz *models.Quiz) *QuizDocument {
	questions := make([]generation.Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = generation.Question{
			Question:     q.Question,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			CorrectIndex: q.CorrectIndex,
		}
	}
	return &QuizDocument{
		Topic:     quiz.Topic,
		Title:     quiz.Title,
		Questions: questions,
	}
}

// probe detects the document kind by which child array is present.
type probe struct {
	Topic       string          `json:"topic"`
	Description string          `json:"description"`
	Title       string          `json:"title"`
	Flashcards  json.RawMessage `json:"flashcards"`
	Questions   json.RawMessage `json:"questions"`
}

// ImportSet parses an uploaded flashcard-set document, re-validating every
// card through the same rules as generated content. Any invalid card fails
// the whole import. Fields are trimmed before validation, same as the
// generation path.
func ImportSet(data []byte) (*generation.FlashcardSet, error) {
	var doc SetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidDocumentError{Reason: "document is not valid JSON", Err: err}
	}
	topic := strings.TrimSpace(doc.Topic)
	if topic == "" {
		return nil, &InvalidDocumentError{Reason: "missing topic"}
	}
	if len(doc.Flashcards) == 0 {
		return nil, &InvalidDocumentError{Reason: "document has no flashcards"}
	}

	cards := make([]generation.Card, len(doc.Flashcards))
	for i, card := range doc.Flashcards {
		cards[i] = generation.Card{
			Question: strings.TrimSpace(card.Question),
			Answer:   strings.TrimSpace(card.Answer),
		}
		if err := generation.CheckCard(cards[i]); err != nil {
			return nil, &InvalidDocumentError{Reason: fmt.Sprintf("flashcard %d", i), Err: err}
		}
	}

	return &generation.FlashcardSet{
		Topic:       topic,
		Description: strings.TrimSpace(doc.Description),
		Cards:       cards,
	}, nil
}

// ImportQuiz parses an uploaded quiz document with the same child
// validation as ImportSet. A missing title derives from the topic.
func ImportQuiz(data []byte) (*generation.Quiz, error) {
	var doc QuizDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidDocumentError{Reason: "document is not valid JSON", Err: err}
	}
	topic := strings.TrimSpace(doc.Topic)
	if topic == "" {
		return nil, &InvalidDocumentError{Reason: "missing topic"}
	}
	if len(doc.Questions) == 0 {
		return nil, &InvalidDocumentError{Reason: "document has no questions"}
	}

	questions := make([]generation.Question, len(doc.Questions))
	for i, q := range doc.Questions {
		questions[i] = generation.Question{
			Question:     strings.TrimSpace(q.Question),
			OptionA:      strings.TrimSpace(q.OptionA),
			OptionB:      strings.TrimSpace(q.OptionB),
			OptionC:      strings.TrimSpace(q.OptionC),
			OptionD:      strings.TrimSpace(q.OptionD),
			CorrectIndex: q.CorrectIndex,
		}
		if err := generation.CheckQuestion(questions[i]); err != nil {
			return nil, &InvalidDocumentError{Reason: fmt.Sprintf("question %d", i), Err: err}
		}
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = fmt.Sprintf("%s Quiz", topic)
	}

	return &generation.Quiz{
		Topic:     topic,
		Title:     title,
		Questions: questions,
	}, nil
}

// Kind identifies which transfer document shape a payload carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindFlashcardSet
	KindQuiz
)

// Detect reports the document kind by which required child array key is
// present. A document with both keys is rejected as ambiguous.
func Detect(data []byte) (Kind, error) {
	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return KindUnknown, &InvalidDocumentError{Reason: "document is not valid JSON", Err: err}
	}

	hasCards := p.Flashcards != nil
	hasQuestions := p.Questions != nil
	switch {
	case hasCards && hasQuestions:
		return KindUnknown, &InvalidDocumentError{Reason: "document has both flashcards and questions"}
	case hasCards:
		return KindFlashcardSet, nil
	case hasQuestions:
		return KindQuiz, nil
	default:
		return KindUnknown, &InvalidDocumentError{Reason: "missing flashcards or questions key"}
	}
}

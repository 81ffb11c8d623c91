package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Card is a validated question/answer pair, not yet persisted.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Question is a validated multiple-choice question, not yet persisted.
// CorrectIndex maps 0=A, 1=B, 2=C, 3=D.
type Question struct {
	Question     string `json:"question"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	CorrectIndex int    `json:"correct_index"`
}

// Options returns the four options as a slice indexed by CorrectIndex
// convention.
func (q Question) Options() [4]string {
	return [4]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// CheckCard enforces the per-card shape rules. Exported so imported
// documents go through the same checks as generated content.
func CheckCard(c Card) error {
	if strings.TrimSpace(c.Question) == "" {
		return fmt.Errorf("card has empty question")
	}
	if strings.TrimSpace(c.Answer) == "" {
		return fmt.Errorf("card has empty answer")
	}
	return nil
}

// CheckQuestion enforces the per-question shape rules: non-empty question
// text, at least two present options, and a correct index that references a
// present option.
func CheckQuestion(q Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question has empty text")
	}

	opts := q.Options()
	present := 0
	for _, opt := range opts {
		if strings.TrimSpace(opt) != "" {
			present++
		}
	}
	if present < 2 {
		return fmt.Errorf("question needs at least two options, has %d", present)
	}

	if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
		return fmt.Errorf("correct_index %d out of range [0,3]", q.CorrectIndex)
	}
	if strings.TrimSpace(opts[q.CorrectIndex]) == "" {
		return fmt.Errorf("correct_index %d references an empty option", q.CorrectIndex)
	}

	return nil
}

// ParseFlashcards parses raw completion text into cards. The model is told
// to return a bare JSON array but often wraps it in prose or code fences, so
// the outermost array is extracted first. Items failing the shape checks are
// skipped: partial value still helps the user, so fewer valid cards than
// requested is accepted and only zero valid cards is an error. Surviving
// cards beyond want are truncated (keep first N).
func ParseFlashcards(raw string, want int) ([]Card, error) {
	payload, ok := extractJSON(raw, '[', ']')
	if !ok {
		return nil, &MalformedError{Reason: "no JSON array in completion output"}
	}

	var items []Card
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, &MalformedError{Reason: "completion output is not a flashcard array", Err: err}
	}

	cards := make([]Card, 0, len(items))
	for _, item := range items {
		card := Card{
			Question: strings.TrimSpace(item.Question),
			Answer:   strings.TrimSpace(item.Answer),
		}
		if CheckCard(card) != nil {
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, &MalformedError{Reason: "completion returned zero valid flashcards"}
	}
	if len(cards) > want {
		cards = cards[:want]
	}

	return cards, nil
}

// rawQuiz mirrors the JSON shape the prompt asks the model for.
type rawQuiz struct {
	Title     string        `json:"title"`
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// ParseQuiz parses raw completion text into a title and questions, applying
// the same extraction and skip-invalid policy as ParseFlashcards.
func ParseQuiz(raw string, want int) (string, []Question, error) {
	payload, ok := extractJSON(raw, '{', '}')
	if !ok {
		return "", nil, &MalformedError{Reason: "no JSON object in completion output"}
	}

	var parsed rawQuiz
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return "", nil, &MalformedError{Reason: "completion output is not a quiz object", Err: err}
	}

	questions := make([]Question, 0, len(parsed.Questions))
	for _, item := range parsed.Questions {
		opts := item.Options
		if len(opts) > 4 {
			opts = opts[:4]
		}
		for len(opts) < 4 {
			opts = append(opts, "")
		}

		q := Question{
			Question:     strings.TrimSpace(item.Question),
			OptionA:      strings.TrimSpace(opts[0]),
			OptionB:      strings.TrimSpace(opts[1]),
			OptionC:      strings.TrimSpace(opts[2]),
			OptionD:      strings.TrimSpace(opts[3]),
			CorrectIndex: item.CorrectIndex,
		}
		if CheckQuestion(q) != nil {
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return "", nil, &MalformedError{Reason: "completion returned zero valid questions"}
	}
	if len(questions) > want {
		questions = questions[:want]
	}

	return strings.TrimSpace(parsed.Title), questions, nil
}

// extractJSON returns the substring from the first open delimiter to the
// last close delimiter. Good enough for completions that wrap a single JSON
// payload in prose or markdown fences.
func extractJSON(raw string, open, closing byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, closing)
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

package generation

import (
	"errors"
	"testing"
)

func TestParseFlashcards_Valid(t *testing.T) {
	raw := `[
		{"question": "What is photosynthesis?", "answer": "Conversion of light energy to chemical energy."},
		{"question": "Where does it occur?", "answer": "In chloroplasts."}
	]`

	cards, err := ParseFlashcards(raw, 5)
	if err != nil {
		t.Fatalf("ParseFlashcards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Question != "What is photosynthesis?" {
		t.Errorf("unexpected question: %q", cards[0].Question)
	}
}

func TestParseFlashcards_WrappedInProse(t *testing.T) {
	raw := "Here are your flashcards:\n```json\n" +
		`[{"question": "Q1", "answer": "A1"}]` + "\n```\nEnjoy!"

	cards, err := ParseFlashcards(raw, 3)
	if err != nil {
		t.Fatalf("ParseFlashcards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
}

func TestParseFlashcards_TruncatesOverDelivery(t *testing.T) {
	raw := `[
		{"question": "Q1", "answer": "A1"},
		{"question": "Q2", "answer": "A2"},
		{"question": "Q3", "answer": "A3"}
	]`

	cards, err := ParseFlashcards(raw, 2)
	if err != nil {
		t.Fatalf("ParseFlashcards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected truncation to 2 cards, got %d", len(cards))
	}
	if cards[1].Question != "Q2" {
		t.Errorf("expected first-N truncation, got %q", cards[1].Question)
	}
}

func TestParseFlashcards_SkipsInvalidItems(t *testing.T) {
	raw := `[
		{"question": "Q1", "answer": "A1"},
		{"question": "Q2", "answer": "A2"},
		{"front": "Q3", "back": "A3"},
		{"question": "Q4", "answer": "A4"}
	]`

	cards, err := ParseFlashcards(raw, 10)
	if err != nil {
		t.Fatalf("ParseFlashcards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected the 3 valid cards, got %d", len(cards))
	}
	if cards[2].Question != "Q4" {
		t.Errorf("expected invalid item skipped, got %q at position 2", cards[2].Question)
	}
}

func TestParseFlashcards_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", "I could not generate flashcards for that topic."},
		{"empty array", "[]"},
		{"only empty question", `[{"question": "  ", "answer": "A"}]`},
		{"only empty answer", `[{"question": "Q", "answer": ""}]`},
		{"only wrong shape", `[{"front": "Q", "back": "A"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlashcards(tt.raw, 5)
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedError, got %v", err)
			}
		})
	}
}

func TestParseQuiz_Valid(t *testing.T) {
	raw := `{
		"title": "Cell Biology Basics",
		"questions": [
			{"question": "What organelle produces ATP?", "options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi"], "correct_index": 1}
		]
	}`

	title, questions, err := ParseQuiz(raw, 5)
	if err != nil {
		t.Fatalf("ParseQuiz: %v", err)
	}
	if title != "Cell Biology Basics" {
		t.Errorf("unexpected title: %q", title)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].OptionB != "Mitochondria" {
		t.Errorf("unexpected option B: %q", questions[0].OptionB)
	}
	if questions[0].CorrectIndex != 1 {
		t.Errorf("unexpected correct index: %d", questions[0].CorrectIndex)
	}
}

func TestParseQuiz_TwoOptionsAllowed(t *testing.T) {
	raw := `{"questions": [
		{"question": "True or false?", "options": ["True", "False"], "correct_index": 0}
	]}`

	_, questions, err := ParseQuiz(raw, 5)
	if err != nil {
		t.Fatalf("ParseQuiz: %v", err)
	}
	if questions[0].OptionC != "" || questions[0].OptionD != "" {
		t.Error("expected missing options to stay empty")
	}
}

func TestParseQuiz_SkipsInvalidItems(t *testing.T) {
	raw := `{"questions": [
		{"question": "Q1", "options": ["A", "B"], "correct_index": 0},
		{"question": "Q2", "options": ["A", "B", "C"], "correct_index": 3},
		{"question": "Q3", "options": ["A", "B"], "correct_index": 1}
	]}`

	_, questions, err := ParseQuiz(raw, 5)
	if err != nil {
		t.Fatalf("ParseQuiz: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected the 2 valid questions, got %d", len(questions))
	}
	if questions[1].Question != "Q3" {
		t.Errorf("expected invalid item skipped, got %q at position 1", questions[1].Question)
	}
}

func TestParseQuiz_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", "Sorry, I can't help with that."},
		{"zero questions", `{"title": "Empty", "questions": []}`},
		{"single option", `{"questions": [{"question": "Q", "options": ["Only"], "correct_index": 0}]}`},
		{"index out of range", `{"questions": [{"question": "Q", "options": ["A", "B", "C", "D"], "correct_index": 4}]}`},
		{"negative index", `{"questions": [{"question": "Q", "options": ["A", "B"], "correct_index": -1}]}`},
		{"index on absent option", `{"questions": [{"question": "Q", "options": ["A", "B", "C"], "correct_index": 3}]}`},
		{"empty question text", `{"questions": [{"question": "", "options": ["A", "B"], "correct_index": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseQuiz(tt.raw, 5)
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedError, got %v", err)
			}
		})
	}
}

func TestParseQuiz_TruncatesOverDelivery(t *testing.T) {
	raw := `{"questions": [
		{"question": "Q1", "options": ["A", "B"], "correct_index": 0},
		{"question": "Q2", "options": ["A", "B"], "correct_index": 1},
		{"question": "Q3", "options": ["A", "B"], "correct_index": 0}
	]}`

	_, questions, err := ParseQuiz(raw, 2)
	if err != nil {
		t.Fatalf("ParseQuiz: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected truncation to 2 questions, got %d", len(questions))
	}
}

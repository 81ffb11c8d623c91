package transfer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/smartcram/smartcram-api/models"
)

func sampleSet() *models.FlashcardSet {
	return &models.FlashcardSet{
		Topic:       "Photosynthesis",
		Description: "Light reactions and the Calvin cycle",
		Flashcards: []models.Flashcard{
			{Question: "What pigment absorbs light?", Answer: "Chlorophyll."},
			{Question: "Where does the Calvin cycle run?", Answer: "In the stroma."},
		},
	}
}

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		Topic: "Photosynthesis",
		Title: "Photosynthesis Quiz",
		Questions: []models.QuizQuestion{
			{Question: "What gas is consumed?", OptionA: "CO2", OptionB: "O2", OptionC: "N2", OptionD: "H2", CorrectIndex: 0},
			{Question: "What gas is released?", OptionA: "CO2", OptionB: "O2", CorrectIndex: 1},
		},
	}
}

func TestSetRoundTrip(t *testing.T) {
	doc := ExportSet(sampleSet())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	imported, err := ImportSet(data)
	if err != nil {
		t.Fatalf("ImportSet: %v", err)
	}
	if imported.Topic != "Photosynthesis" {
		t.Errorf("topic = %q", imported.Topic)
	}
	if imported.Description != "Light reactions and the Calvin cycle" {
		t.Errorf("description = %q", imported.Description)
	}
	if len(imported.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(imported.Cards))
	}
	if imported.Cards[1].Answer != "In the stroma." {
		t.Errorf("card order not preserved: %q", imported.Cards[1].Answer)
	}
}

func TestQuizRoundTrip(t *testing.T) {
	doc := ExportQuiz(sampleQuiz())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	imported, err := ImportQuiz(data)
	if err != nil {
		t.Fatalf("ImportQuiz: %v", err)
	}
	if imported.Title != "Photosynthesis Quiz" {
		t.Errorf("title = %q", imported.Title)
	}
	if len(imported.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(imported.Questions))
	}
	if imported.Questions[1].CorrectIndex != 1 {
		t.Errorf("correct index not preserved: %d", imported.Questions[1].CorrectIndex)
	}
}

func TestExportOmitsOwnerAndIDs(t *testing.T) {
	set := sampleSet()
	set.ID = 7
	set.UserID = 3
	set.PublicID = "abc123"

	data, err := json.Marshal(ExportSet(set))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "user_id", "public_id", "ID", "UserID"} {
		if _, ok := raw[key]; ok {
			t.Errorf("exported document leaks %q", key)
		}
	}
}

func TestImportSet_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not JSON", "topic: yaml"},
		{"missing topic", `{"flashcards": [{"question": "Q", "answer": "A"}]}`},
		{"missing flashcards", `{"topic": "Biology"}`},
		{"empty flashcards", `{"topic": "Biology", "flashcards": []}`},
		{"card without answer", `{"topic": "Biology", "flashcards": [{"question": "Q", "answer": ""}]}`},
		{"whitespace topic", `{"topic": "   ", "flashcards": [{"question": "Q", "answer": "A"}]}`},
		{"whitespace answer", `{"topic": "Biology", "flashcards": [{"question": "Q", "answer": "  "}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportSet([]byte(tt.data))
			var invalid *InvalidDocumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidDocumentError, got %v", err)
			}
		})
	}
}

func TestImportSet_TrimsFields(t *testing.T) {
	data := `{"topic": "  Biology  ", "description": " cells ", "flashcards": [
		{"question": "  Q  ", "answer": "  A  "}
	]}`

	set, err := ImportSet([]byte(data))
	if err != nil {
		t.Fatalf("ImportSet: %v", err)
	}
	if set.Topic != "Biology" {
		t.Errorf("topic = %q", set.Topic)
	}
	if set.Description != "cells" {
		t.Errorf("description = %q", set.Description)
	}
	if set.Cards[0].Question != "Q" || set.Cards[0].Answer != "A" {
		t.Errorf("card not trimmed: %+v", set.Cards[0])
	}
}

func TestImportQuiz_TrimsFields(t *testing.T) {
	data := `{"topic": " Biology ", "title": "  ", "questions": [
		{"question": " Q ", "option_a": " A ", "option_b": " B ", "correct_index": 0}
	]}`

	quiz, err := ImportQuiz([]byte(data))
	if err != nil {
		t.Fatalf("ImportQuiz: %v", err)
	}
	if quiz.Topic != "Biology" {
		t.Errorf("topic = %q", quiz.Topic)
	}
	if quiz.Title != "Biology Quiz" {
		t.Errorf("blank title should fall back to topic, got %q", quiz.Title)
	}
	if quiz.Questions[0].Question != "Q" || quiz.Questions[0].OptionA != "A" {
		t.Errorf("question not trimmed: %+v", quiz.Questions[0])
	}
}

func TestImportQuiz_InvalidChild(t *testing.T) {
	data := `{"topic": "Biology", "title": "T", "questions": [
		{"question": "Q", "option_a": "A", "option_b": "B", "option_c": "C", "correct_index": 3}
	]}`

	_, err := ImportQuiz([]byte(data))
	var invalid *InvalidDocumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDocumentError for correct_index on absent option, got %v", err)
	}
}

func TestImportQuiz_TitleFallback(t *testing.T) {
	data := `{"topic": "Biology", "questions": [
		{"question": "Q", "option_a": "A", "option_b": "B", "correct_index": 0}
	]}`

	quiz, err := ImportQuiz([]byte(data))
	if err != nil {
		t.Fatalf("ImportQuiz: %v", err)
	}
	if quiz.Title != "Biology Quiz" {
		t.Errorf("title = %q", quiz.Title)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Kind
		wantErr bool
	}{
		{"flashcard set", `{"topic": "T", "flashcards": []}`, KindFlashcardSet, false},
		{"quiz", `{"topic": "T", "questions": []}`, KindQuiz, false},
		{"neither", `{"topic": "T"}`, KindUnknown, true},
		{"both", `{"flashcards": [], "questions": []}`, KindUnknown, true},
		{"garbage", `[`, KindUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %t", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("kind = %d, want %d", got, tt.want)
			}
		})
	}
}

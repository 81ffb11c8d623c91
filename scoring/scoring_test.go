package scoring

import (
	"testing"

	"github.com/smartcram/smartcram-api/models"
)

func questionsWithAnswers(correct ...int) []models.QuizQuestion {
	qs := make([]models.QuizQuestion, len(correct))
	for i, c := range correct {
		qs[i] = models.QuizQuestion{
			Question:     "Q",
			OptionA:      "A",
			OptionB:      "B",
			OptionC:      "C",
			OptionD:      "D",
			CorrectIndex: c,
		}
	}
	return qs
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		correct     []int
		answers     []int
		wantCorrect int
		wantTotal   int
		wantPct     float64
	}{
		{
			name:        "all correct",
			correct:     []int{0, 1, 2, 3},
			answers:     []int{0, 1, 2, 3},
			wantCorrect: 4,
			wantTotal:   4,
			wantPct:     100.0,
		},
		{
			name:        "partial submission scores against full quiz",
			correct:     []int{0, 1, 2, 0, 3},
			answers:     []int{0, 1, 2, 0},
			wantCorrect: 4,
			wantTotal:   5,
			wantPct:     80.0,
		},
		{
			name:        "two of five positions match",
			correct:     []int{0, 0, 2, 2, 1},
			answers:     []int{0, 1, 2, 0},
			wantCorrect: 2,
			wantTotal:   5,
			wantPct:     40.0,
		},
		{
			name:        "extra answers ignored",
			correct:     []int{1},
			answers:     []int{1, 2, 3},
			wantCorrect: 1,
			wantTotal:   1,
			wantPct:     100.0,
		},
		{
			name:        "empty quiz never divides by zero",
			correct:     nil,
			answers:     []int{0, 1},
			wantCorrect: 0,
			wantTotal:   0,
			wantPct:     0.0,
		},
		{
			name:        "fractional percentage kept",
			correct:     []int{0, 0, 0},
			answers:     []int{0, 1, 1},
			wantCorrect: 1,
			wantTotal:   3,
			wantPct:     100.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(questionsWithAnswers(tt.correct...), tt.answers)
			if got.CorrectCount != tt.wantCorrect {
				t.Errorf("CorrectCount = %d, want %d", got.CorrectCount, tt.wantCorrect)
			}
			if got.TotalQuestions != tt.wantTotal {
				t.Errorf("TotalQuestions = %d, want %d", got.TotalQuestions, tt.wantTotal)
			}
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %f, want %f", got.Percentage, tt.wantPct)
			}
		})
	}
}

// Package scoring grades quiz submissions against stored correct answers.
package scoring

import "github.com/smartcram/smartcram-api/models"

// Result is the outcome of grading one submission. Percentage keeps
// fractional precision; rounding is the display layer's concern.
type Result struct {
	CorrectCount   int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"score_percentage"`
	Answers        []int   `json:"answers"`
}

// Score compares submitted answers to the quiz positionally. Answers beyond
// the question count are ignored, unanswered questions count as incorrect,
// and an empty quiz scores 0%.
func Score(questions []models.QuizQuestion, answers []int) Result {
	correct := 0
	n := len(answers)
	if len(questions) < n {
		n = len(questions)
	}
	for i := 0; i < n; i++ {
		if answers[i] == questions[i].CorrectIndex {
			correct++
		}
	}

	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = 100.0 * float64(correct) / float64(total)
	}

	return Result{
		CorrectCount:   correct,
		TotalQuestions: total,
		Percentage:     percentage,
		Answers:        answers,
	}
}

package generation

import (
	"fmt"
	"strings"
)

// buildFlashcardPrompt constructs the completion prompt for a flashcard set.
// The instructions pin the model to a bare JSON array so the validator can
// parse the output without a schema-capable provider.
func buildFlashcardPrompt(topic, sourceText string, numCards int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert educational content creator. Create %d flashcards", numCards)
	if sourceText != "" {
		b.WriteString(" from the given text")
	}
	fmt.Fprintf(&b, ".\n\nTopic: %s\n", topic)
	if sourceText != "" {
		fmt.Fprintf(&b, "Source Text: %s\n", sourceText)
	}

	b.WriteString(`
Instructions:
- Create clear, concise questions and answers
- Questions should be specific and test understanding
- Answers should be 1-3 sentences maximum
- Cover key concepts of the topic
- Ensure questions are varied (definition, application, analysis)

Return ONLY a JSON array with this exact format:
[
    {"question": "Question text here", "answer": "Answer text here"},
    {"question": "Question text here", "answer": "Answer text here"}
]

Do not include any other text, only the JSON array.
`)

	return b.String()
}

// buildQuizPrompt constructs the completion prompt for a multiple-choice quiz.
func buildQuizPrompt(topic, sourceText string, numQuestions int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert quiz creator. Create a %d-question multiple-choice quiz", numQuestions)
	if sourceText != "" {
		b.WriteString(" from the given text")
	}
	fmt.Fprintf(&b, ".\n\nTopic: %s\n", topic)
	if sourceText != "" {
		fmt.Fprintf(&b, "Source Text: %s\n", sourceText)
	}

	b.WriteString(`
Instructions:
- Create challenging but fair questions
- Each question must have exactly 4 options (A, B, C, D)
- Only one option should be correct
- Include a mix of difficulty levels
- Questions should test understanding, not just memorization

Return ONLY a JSON object with this exact format:
{
    "title": "Quiz Title Here",
    "questions": [
        {
            "question": "Question text here?",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_index": 0
        }
    ]
}

Note: correct_index should be 0 for A, 1 for B, 2 for C, 3 for D
Do not include any other text, only the JSON object.
`)

	return b.String()
}

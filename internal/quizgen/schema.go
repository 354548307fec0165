package quizgen

import "github.com/abhisek/quizwiz/internal/llm"

// QuestionsSchema validates the JSON block extracted from the model's
// generation response. Only question and correctAnswer are required;
// everything else is best-effort and resolved with defaults.
var QuestionsSchema = &llm.Schema{
	Name:        "trivia-questions",
	Description: "A batch of trivia questions with answers and source topics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, in the requested language",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The single unambiguous correct answer",
						},
						"alternativeAnswers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Accepted alternative spellings or forms of the answer",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Exact Wikipedia article name backing the answer",
						},
						"sourceUrl": map[string]any{
							"type":        "string",
							"description": "Optional source article URL, for specialized categories",
						},
						"imageUrl": map[string]any{
							"type": "string",
						},
						"imageAlt": map[string]any{
							"type": "string",
						},
					},
					"required": []any{"question", "correctAnswer"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

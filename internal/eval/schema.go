package eval

import "github.com/abhisek/quizwiz/internal/llm"

// VerdictsSchema validates the JSON block extracted from the model's
// grading response.
var VerdictsSchema = &llm.Schema{
	Name:        "answer-verdicts",
	Description: "Grading verdicts for a batch of quiz answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"evaluations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the question being graded",
						},
						"isCorrect": map[string]any{
							"type": "boolean",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Verdict reasoning with an extra fact about the question",
						},
					},
					"required": []any{"questionIndex", "isCorrect", "explanation"},
				},
			},
		},
		"required": []any{"evaluations"},
	},
}

package quizgen

import "github.com/abhisek/quizforge/internal/llm"

// BatchSchema is the JSON schema for one tier's model response. The root is
// an object wrapping the question array: vendor structured-output formats
// (OpenAI's json_schema response format, Anthropic's output format) require
// an object root and reject array-rooted schemas. The response decoder pulls
// the array back out of the wrapper. correct_answer is left untyped because
// some models answer with a 1-based index; the validator normalizes it.
var BatchSchema = &llm.Schema{
	Name:        "quiz-question-batch",
	Description: "A batch of multiple choice quiz questions for one difficulty tier",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt, asking about a specific fact, term, or idea from the content",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 pairwise-distinct answer options",
						},
						"correct_answer": map[string]any{
							"description": "The letter of the correct option: A, B, C, or D",
						},
					},
					"required":             []any{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

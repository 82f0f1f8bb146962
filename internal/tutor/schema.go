package tutor

import "github.com/abhisek/lesezeit/internal/llm"

// Every property is required and extra properties are rejected so the
// schemas work with OpenAI strict mode. Optional values come back empty.

var translationSchema = &llm.Schema{
	Name:        "translation",
	Description: "Translation of German text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translation": map[string]any{
				"type":        "string",
				"description": "Natural translation of the German text",
				"minLength":   1,
			},
			"note": map[string]any{
				"type":        "string",
				"description": "One short note on an idiom or grammar point, or empty",
			},
		},
		"required":             []any{"translation", "note"},
		"additionalProperties": false,
	},
}

var definitionSchema = &llm.Schema{
	Name:        "definition",
	Description: "Dictionary entry for a German word in context",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"base_form": map[string]any{
				"type":        "string",
				"description": "Dictionary form: infinitive for verbs, nominative singular with article for nouns",
				"minLength":   1,
			},
			"part_of_speech": map[string]any{
				"type": "string",
				"enum": []any{"noun", "verb", "adjective", "adverb", "pronoun", "preposition", "conjunction", "article", "numeral", "particle", "other"},
			},
			"gender": map[string]any{
				"type":        "string",
				"enum":        []any{"masculine", "feminine", "neuter", ""},
				"description": "Grammatical gender for nouns, empty otherwise",
			},
			"translation": map[string]any{
				"type":        "string",
				"description": "Translation of the word as used in the sentence",
				"minLength":   1,
			},
			"meaning": map[string]any{
				"type":        "string",
				"description": "One-sentence explanation of the meaning",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "A different short German example sentence",
			},
		},
		"required":             []any{"base_form", "part_of_speech", "gender", "translation", "meaning", "example"},
		"additionalProperties": false,
	},
}

var dialogueSchema = &llm.Schema{
	Name:        "dialogue",
	Description: "Comprehension questions about a German text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var evaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Judgement of a learner's spoken answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"acceptable": map[string]any{
				"type":        "boolean",
				"description": "True when the answer is relevant, understandable and mostly correct German",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two encouraging sentences",
			},
			"correction": map[string]any{
				"type":        "string",
				"description": "Corrected version of the answer, or empty when none is needed",
			},
		},
		"required":             []any{"acceptable", "feedback", "correction"},
		"additionalProperties": false,
	},
}

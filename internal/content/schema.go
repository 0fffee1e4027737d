package content

// catalogSchema is the JSON Schema for question-bank catalogs.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"groups": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"group_key": map[string]any{
						"type":    "string",
						"pattern": `^N[1-5]-(\d{4}-(07|12|1|2)|(GRAMMAR|VOCAB)-\d{4})$`,
					},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    questionSchema,
					},
				},
				"required":             []any{"group_key", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"groups"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"item_number": map[string]any{"type": "integer", "minimum": 1},
		"section": map[string]any{
			"type": "string",
			"enum": []any{"vocab", "grammar", "reading", "listening"},
		},
		"stem":    map[string]any{"type": "string", "minLength": 1},
		"passage": map[string]any{"type": []any{"string", "null"}},
		"choices": map[string]any{
			"type":     "array",
			"minItems": 2,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"position":    map[string]any{"type": "integer", "minimum": 1},
					"content":     map[string]any{"type": "string", "minLength": 1},
					"is_correct":  map[string]any{"type": "boolean"},
					"explanation": map[string]any{"type": []any{"string", "null"}},
				},
				"required":             []any{"position", "content", "is_correct"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"item_number", "section", "stem", "choices"},
	"additionalProperties": false,
}

package llm

// BuildHighlightsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as an output constraint and also use
// it locally to validate what came back.
func BuildHighlightsJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"top_vendor":       map[string]any{"type": "string"},
			"top_category":     map[string]any{"type": "string"},
			"biggest_change":   map[string]any{"type": "string"},
			"unusual_activity": map[string]any{"type": "string"},
			"recommendations": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": 5,
			},
		},
		"required": []string{"top_vendor", "top_category"},
	}
}

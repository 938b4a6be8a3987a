package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"upper tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkdownFences(tt.in))
		})
	}
}

func TestValidateHighlights(t *testing.T) {
	schema := BuildHighlightsJSONSchema()

	valid := []byte(`{"top_vendor":"Acme Corp","top_category":"SoftwareServices","recommendations":["review Acme contract"]}`)
	assert.NoError(t, ValidateJSONAgainstSchema(schema, valid))

	missingRequired := []byte(`{"top_vendor":"Acme Corp"}`)
	assert.Error(t, ValidateJSONAgainstSchema(schema, missingRequired))

	unknownKey := []byte(`{"top_vendor":"Acme","top_category":"Meals","surprise":true}`)
	assert.Error(t, ValidateJSONAgainstSchema(schema, unknownKey))

	tooManyRecommendations := []byte(`{"top_vendor":"A","top_category":"B","recommendations":["1","2","3","4","5","6"]}`)
	assert.Error(t, ValidateJSONAgainstSchema(schema, tooManyRecommendations))
}

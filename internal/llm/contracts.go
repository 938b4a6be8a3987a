package llm

import "context"

// ChatMessage is one turn of a chat/completions conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ReportHighlights is the structured portion of a generated spending report.
// The narrative is free text; highlights must validate against the schema so
// the frontend can render them without defensive parsing.
type ReportHighlights struct {
	TopVendor       string   `json:"top_vendor,omitempty"`
	TopCategory     string   `json:"top_category,omitempty"`
	BiggestChange   string   `json:"biggest_change,omitempty"`
	UnusualActivity string   `json:"unusual_activity,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Completer is the interface our services depend on.
type Completer interface {
	// Complete returns the assistant's free-text reply for the conversation.
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
	// CompleteJSON returns the assistant's reply constrained to a JSON object.
	CompleteJSON(ctx context.Context, messages []ChatMessage) ([]byte, error)
}

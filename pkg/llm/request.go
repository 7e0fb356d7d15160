package llm

// ChatRequest represents a chat completion request (OpenAI-compatible).
type ChatRequest struct {
	Model    string    `json:"model"`    // Model name (e.g., "gpt-4-turbo-preview")
	Messages []Message `json:"messages"` // Conversation context, oldest first
	Stream   bool      `json:"stream,omitempty"`

	// Sampling parameters
	MaxTokens        int     `json:"max_tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	PresencePenalty  float64 `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"`
}

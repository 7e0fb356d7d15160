package llm

// StreamChunk represents a single SSE chunk in a streaming response
// (OpenAI-compatible, object "chat.completion.chunk").
type StreamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

// StreamChoice carries the incremental delta for one choice.
type StreamChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// Delta is the incremental message payload of a stream chunk. The first
// chunk carries the role, subsequent chunks carry content fragments.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}
